package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spigell/resume-parser/internal/pdfdoc"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-parser"
)

type Config struct {
	Layout      pdfdoc.Config `mapstructure:"layout"`
	Quality     bool          `mapstructure:"quality"`
	Skills      *SkillsConfig `mapstructure:"skills"`
	OCR         *OCRConfig    `mapstructure:"ocr"`
	Output      string        `mapstructure:"output"`
	Fields      []string      `mapstructure:"fields"`
	Concurrency int           `mapstructure:"concurrency"`
}

type SkillsConfig struct {
	DisabledFilters []string `mapstructure:"disabled-filters"`
}

type OCRConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	HTTP     *HTTPConfig   `mapstructure:"http"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type HTTPConfig struct {
	URL       string        `mapstructure:"url"`
	Token     string        `mapstructure:"token" json:"-"`
	TokenFile string        `mapstructure:"token-file"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-parser extracts summary, skills and experience from DOCX, PDF and text résumés",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ocr.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ocr.http.token-file", "OCR_TOKEN_FILE"); err != nil {
		log.Fatalf("binding OCR_TOKEN_FILE environment variable: %v", err)
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-parser.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func setDefaults(v *viper.Viper) {
	layout := pdfdoc.DefaultConfig()
	v.SetDefault("layout.density-threshold", layout.DensityThreshold)
	v.SetDefault("layout.density-pages", layout.DensityPages)
	v.SetDefault("layout.two-column-fraction", layout.TwoColumnFraction)
	v.SetDefault("layout.min-text-lines", layout.MinTextLines)
	v.SetDefault("layout.ocr-dpi", layout.OCRDPI)
	v.SetDefault("quality", false)
	v.SetDefault("skills.disabled-filters", []string{})

	v.SetDefault("ocr.provider", "none")
	v.SetDefault("ocr.gemini.max-retries", 2)
	v.SetDefault("ocr.gemini.max-log-length", 200)
	v.SetDefault("ocr.http.timeout", 60*time.Second)

	v.SetDefault("output", "json")
	v.SetDefault("fields", []string{})
	v.SetDefault("concurrency", 4)
}

func initConfig() {
	// Config is needed only for the parse command.
	if parseCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := readConfig(viper.GetViper(), cfgFile != ""); err != nil {
		log.Fatal(err)
	}
}

// readConfig loads the config file. A missing default file is not an error
// since every key has a default.
func readConfig(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !explicit && errors.As(err, &notFound) {
		return nil
	}
	return err
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	err := v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
