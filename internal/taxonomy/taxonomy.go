// Package taxonomy maps résumé heading lines onto canonical sections.
package taxonomy

import (
	"sort"
	"sync"
)

// Section is a canonical résumé section.
type Section string

const (
	Summary        Section = "summary"
	Skills         Section = "skills"
	Experience     Section = "experience"
	Projects       Section = "projects"
	Education      Section = "education"
	Certifications Section = "certifications"
	Other          Section = "other"
)

var canonical = map[Section][]string{
	Summary: {
		"summary", "professional summary", "profile", "about me", "overview",
		"executive summary", "career summary", "objective",
		// es, de
		"perfil profesional", "zusammenfassung",
	},
	Skills: {
		"skills", "technical skills", "core competencies", "skills & tools", "competencies",
		"key skills", "technology stack", "stack",
		"habilidades", "compétences", "fähigkeiten", "kenntnisse",
	},
	Experience: {
		"experience", "work experience", "professional experience", "employment",
		"work history", "career history", "relevant experience",
		"experiencia", "experiencia profesional", "expérience", "expérience professionnelle",
		"berufserfahrung",
	},
	Projects: {
		"projects", "selected projects", "personal projects", "key projects",
		"proyectos", "projets", "projekte",
	},
	Education: {
		"education", "academics", "academic background",
		"educación", "ausbildung", "bildung",
	},
	Certifications: {
		"certifications", "licenses", "certs",
		"certificaciones", "zertifizierungen",
	},
}

// misspellings map a common typo to the phrase it should have been.
var misspellings = map[string]string{
	"summery":              "professional summary",
	"sumary":               "summary",
	"proffesional summary": "professional summary",
	"experiance":           "experience",
	"work experiance":      "work experience",
	"educatoin":            "education",
	"cerifications":        "certifications",
}

// Aliases is the immutable heading alias table.
type Aliases struct {
	bucket map[string]Section
	keys   []string
}

func buildAliases() *Aliases {
	a := &Aliases{bucket: make(map[string]Section)}

	for section, names := range canonical {
		for _, name := range names {
			a.bucket[name] = section
		}
	}

	// Typos land in the bucket of their corrected phrase; unknown corrections are skipped.
	for wrong, right := range misspellings {
		if section, ok := a.bucket[right]; ok {
			a.bucket[wrong] = section
		}
	}

	a.keys = make([]string, 0, len(a.bucket))
	for k := range a.bucket {
		a.keys = append(a.keys, k)
	}
	sort.Strings(a.keys)

	return a
}

// Table returns the process-wide alias table, built on first use.
var Table = sync.OnceValue(buildAliases)
