package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/config"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/logger"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/registry"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/report"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/schema"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/ui"
)

var (
	flagConfig   string
	flagJSONLog  string
	flagNoReport bool
	flagQuiet    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the whole registry and report a verdict",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to settings.yaml")
	validateCmd.Flags().StringVar(&flagJSONLog, "json-log", "", "emit findings as JSON lines to this file ('-' for stdout)")
	validateCmd.Flags().BoolVar(&flagNoReport, "no-report", false, "skip writing the markdown report")
	validateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress banner and per-finding output")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		ui.PrintFatal(err)
		return err
	}

	if err := logger.InitLogger(cfg.Log.Dir); err != nil {
		ui.PrintFatal(err)
		return err
	}
	defer logger.Close()

	jsonPath := flagJSONLog
	if jsonPath == "" {
		jsonPath = cfg.Log.JSONPath
	}
	if jsonPath != "" {
		if err := logger.InitJSONLog(jsonPath); err != nil {
			ui.PrintFatal(err)
			return err
		}
	}

	if !flagQuiet {
		ui.PrintBanner(version)
	}

	// Schema compilation happens exactly once, before any entry is touched.
	// A broken schema document is a fatal startup condition.
	schemas, err := schema.Compile(cfg.Registry.TokenSchema, cfg.Registry.ProjectSchema)
	if err != nil {
		ui.PrintFatal(err)
		return err
	}

	orch := registry.New(cfg, schemas)
	summary, err := orch.Run()
	if err != nil {
		ui.PrintFatal(err)
		return err
	}

	findings := orch.Findings()
	if !flagQuiet {
		for _, f := range findings {
			ui.PrintFinding(f)
		}
		ui.PrintSummary(summary)
	}

	rep := &report.Report{
		RunID:    uuid.NewString(),
		Summary:  summary,
		Findings: findings,
	}

	if !flagNoReport {
		gen := report.NewMarkdownGenerator()
		content, gerr := gen.Generate(rep)
		if gerr == nil {
			if path, serr := report.NewFileStorage(cfg.ReportDir).Save(rep, content); serr != nil {
				logger.Warn("could not write report: %v", serr)
			} else {
				logger.Info("report written to %s", path)
			}
		}
	}

	if cfg.DatabaseEnabled() {
		ctx := context.Background()
		db, derr := config.InitDB(ctx, cfg)
		if derr != nil {
			logger.Warn("run-history store unavailable: %v", derr)
		} else if db != nil {
			defer db.Close()
			if serr := report.NewDBStorage(db).Save(ctx, rep); serr != nil {
				logger.Warn("could not persist run history: %v", serr)
			}
		}
	}

	if summary.Verdict == registry.VerdictFailed {
		return fmt.Errorf("%d hard error(s): %w", summary.Errors, ValidationFailedError{})
	}
	return nil
}
