package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexlattice/anchorscan/internal/config"
	"github.com/hexlattice/anchorscan/internal/engine"
	"github.com/hexlattice/anchorscan/internal/logging"
	"github.com/hexlattice/anchorscan/internal/model"
	"github.com/hexlattice/anchorscan/internal/report"
	"github.com/hexlattice/anchorscan/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newScanCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCatalogCmd())
}

func newScanCmd() *cobra.Command {
	var (
		format        string
		outputFile    string
		catalogDir    string
		threshold     string
		failOn        string
		baselinePath  string
		writeBaseline string
		useTUI        bool
		debug         bool
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a Solana/Anchor project for vulnerabilities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			logging.InitLogger(debug)
			log := logging.Logger

			cfg, cfgPath, _ := config.Load(path)
			if cfgPath != "" {
				log.Debugw("loaded config", "path", cfgPath)
			}
			if format == "" {
				format = cfg.Format
			}
			if catalogDir == "" {
				catalogDir = cfg.CatalogDir
			}
			if threshold == "" {
				threshold = cfg.SeverityThreshold
			}
			if failOn == "" {
				failOn = cfg.FailOn
			}
			if baselinePath == "" {
				baselinePath = cfg.Baseline
			}

			ana := engine.New(path, catalogDir)
			log.Debugw("starting scan", "path", path, "overflowChecks", ana.OverflowChecks())
			res := ana.Analyze()
			log.Debugw("scan finished",
				"vulnerabilities", len(res.Vulnerabilities),
				"warnings", len(res.Warnings),
				"info", len(res.Info))

			res = engine.ApplyThreshold(res, model.ParseSeverity(threshold))
			res = engine.ApplyInlineSuppressions(res)
			if baselinePath != "" {
				res = engine.FilterByBaseline(res, baselinePath)
			}

			if useTUI {
				// TUI mode ignores format flags
				return tui.Run(res)
			}

			var rendered []byte
			switch format {
			case "json":
				data, err := report.ToJSON(res)
				if err != nil {
					return err
				}
				rendered = data
			case "sarif":
				data, err := report.ToSARIF(res)
				if err != nil {
					return err
				}
				rendered = data
			case "table":
				fmt.Fprintf(cmd.OutOrStdout(), "Vulnerabilities: %d, Warnings: %d, Info: %d\n",
					len(res.Vulnerabilities), len(res.Warnings), len(res.Info))
				for _, v := range res.Vulnerabilities {
					fmt.Fprintf(cmd.OutOrStdout(), "- [%s] %s:%d %s\n", v.Severity, v.Location.File, v.Location.Line, v.Description)
				}
			default:
				rendered = []byte(report.ToMarkdown(res))
			}

			if rendered != nil {
				if outputFile != "" {
					if err := os.WriteFile(outputFile, rendered, 0o644); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to: %s\n", outputFile)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
				}
			}

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, res); err != nil {
					return err
				}
			}

			if failOn != "" {
				limit := model.ParseSeverity(failOn)
				for _, v := range res.Vulnerabilities {
					if model.SeverityGTE(v.Severity, limit) {
						return fmt.Errorf("fail-on threshold met: %s", v.Severity)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: markdown|json|sarif|table")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file instead of stdout")
	cmd.Flags().StringVar(&catalogDir, "catalog", "", "Directory with vulnerability description documents")
	cmd.Flags().StringVar(&threshold, "severity-threshold", "", "Drop vulnerabilities below this severity (low|medium|high|critical)")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Fail if a vulnerability of this severity or higher is found")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Filter out vulnerabilities listed in this baseline file")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with vulnerability fingerprints")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}
