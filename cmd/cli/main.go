package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/Ed1123/bank-statements/pkg/config"
	"github.com/Ed1123/bank-statements/pkg/extract"
	"github.com/Ed1123/bank-statements/pkg/parser"
	"github.com/Ed1123/bank-statements/pkg/plan"
	"github.com/Ed1123/bank-statements/pkg/service"
)

var (
	cliFilters filters
	cfgFile    string
	verbose    bool
)

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bank-statements",
		Level:           level,
	})
}

var rootCmd = &cobra.Command{
	Use:   "bank-statements",
	Short: "Convert BBVA credit card statement PDFs to CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <pdf_or_directory>",
	Short: "Convert statement PDFs to CSV files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		processor := service.NewProcessor(cfg, logger, cliFilters.toFilterFunc())

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			return processor.ProcessDirectory(args[0])
		}
		return processor.ProcessFile(args[0], "")
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <pdf>",
	Short: "Parse one statement and pretty-print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		doc, err := extract.Read(args[0], cfg.Password)
		if err != nil {
			return err
		}

		st, err := parser.New(logger, cfg.ParserOptions()...).Parse(doc.Pages, doc.CreatedAt)
		if err != nil {
			return err
		}

		pp.Println(st)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Preview a YAML batch of statements (dry-run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Plan preview for %s\n", args[0])
		p.Print()
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <plan_file>",
	Short: "Convert every statement listed in a YAML batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		processor := service.NewProcessor(cfg, logger, cliFilters.toFilterFunc())

		var failed int
		for _, st := range p.Statements {
			outPath := p.ResolveOutput(st)
			if outPath == "" {
				outPath = strings.TrimSuffix(st.File, filepath.Ext(st.File)) + ".csv"
			}
			if err := processor.Convert(st.File, outPath, st.Password()); err != nil {
				logger.Error("failed to convert statement", "file", st.File, "error", err)
				failed++
				continue
			}
			logger.Info("converted statement", "file", st.File, "output", outPath)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d statements failed", failed, len(p.Statements))
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is bank-statements.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory (default: next to each input)")
	rootCmd.PersistentFlags().String("password", "", "PDF password (or BANK_STATEMENTS_PASSWORD)")

	// Filter flags (global)
	rootCmd.PersistentFlags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	rootCmd.PersistentFlags().StringVar(&cliFilters.currency, "currency", "", "Filter by currency (PEN or USD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.holder, "holder", "", "Filter by holder name (case insensitive)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
