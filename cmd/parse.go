package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/output"
	"github.com/spigell/resume-parser/internal/resume"

	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	PromptPrint        = "Print results"
	PromptReportByPath = "Report by extraction path"
	PromptResultsFile  = "Dump results to file"
	PromptExit         = "Exit"

	// maxFileSize is the largest upload the CLI accepts.
	maxFileSize = 16 << 20
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptPrint, PromptReportByPath, PromptResultsFile, PromptExit},
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse one or more résumés",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parse(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolP("auto-approve", "y", false, "print results without asking")
	parseCmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
	parseCmd.Flags().StringSlice("fields", nil, "comma separated result fields to print (default all)")
	parseCmd.Flags().IntP("concurrency", "c", 4, "files parsed in parallel")
	parseCmd.Flags().Bool("quality", false, "attach PDF quality metrics")

	viper.BindPFlag("output", parseCmd.Flags().Lookup("output"))
	viper.BindPFlag("fields", parseCmd.Flags().Lookup("fields"))
	viper.BindPFlag("concurrency", parseCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("quality", parseCmd.Flags().Lookup("quality"))
}

func parse(cmd *cobra.Command, files []string) {
	ctx := context.Background()

	logger, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-file"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the resume-parser", zap.String("version", resolveVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	format, err := output.ParseFormat(config.Output)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	recognizer, err := newRecognizer(ctx, config.OCR, logger)
	if err != nil {
		logger.Fatal(
			"building ocr engine",
			zap.Error(err),
			zap.String("hint", "set ocr.provider to none to parse without OCR"),
		)
	}

	parser := resume.New(parserConfig(config), resume.Deps{
		Logger:     logger,
		Recognizer: recognizer,
	})

	results, err := parseFiles(ctx, parser, files, config.Concurrency, logger)
	if err != nil {
		logger.Fatal("parsing files", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no files parsed"))
		return
	}

	logger.Info("parsed files", zap.Int("count", results.Len()))

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := printResults(cmd.OutOrStdout(), results, format, config.Fields); err != nil {
			logger.Fatal("printing results", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(cmd.OutOrStdout(), action, logger, config, format, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func parserConfig(config *Config) resume.Config {
	cfg := resume.Config{Layout: config.Layout, Quality: config.Quality}
	if config.Skills != nil {
		cfg.DisabledSkillFilters = config.Skills.DisabledFilters
	}
	return cfg
}

func handleAction(w io.Writer, action string, logger *zap.Logger, config *Config, format output.Format, results *output.Results) error {
	switch action {
	case PromptPrint:
		return printResults(w, results, format, config.Fields)
	case PromptReportByPath:
		pretty, _ := json.MarshalIndent(results.ReportByPath(), "", "  ")
		logger.Info(string(pretty), zap.Int("files count", results.Len()))
		return nil
	case PromptResultsFile:
		filename, err := results.DumpToTmpFile(format)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printResults(w io.Writer, results *output.Results, format output.Format, fields []string) error {
	rows, err := results.Select(fields)
	if err != nil {
		return err
	}
	return output.Render(w, format, rows)
}

// parseFiles parses files with at most concurrency workers. Unreadable and
// oversized files are logged and skipped; results keep the argument order.
func parseFiles(ctx context.Context, parser *resume.Parser, files []string, concurrency int, log *zap.Logger) (*output.Results, error) {
	parsed := make([]*resume.ParsedResume, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, file := range files {
		g.Go(func() error {
			data, err := readFile(file)
			if err != nil {
				log.Warn("skipping file", zap.String(logger.FieldFile, file), zap.Error(err))
				return nil
			}

			res := parser.Parse(ctx, file, data)
			parsed[i] = &res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := &output.Results{}
	for i, r := range parsed {
		if r != nil {
			results.Add(files[i], *r)
		}
	}
	return results, nil
}

func readFile(name string) ([]byte, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", name)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("file is %s, limit is %s",
			humanize.Bytes(uint64(info.Size())), humanize.Bytes(maxFileSize))
	}
	return os.ReadFile(name)
}
