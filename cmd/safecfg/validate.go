package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/safecfg-dev/safecfg/internal/config"
	"github.com/safecfg-dev/safecfg/internal/output"
	"github.com/safecfg-dev/safecfg/internal/rules"
	"github.com/safecfg-dev/safecfg/internal/version"
)

var (
	format    string
	outFile   string
	ruleExprs []string
	parallel  int
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <document.yaml>...",
	Short: "Validate safety-source configuration documents",
	Long: `Load one or more configuration documents, build every sources group
through the validating builders, and report all findings.

Policy rules:
  --rule expressions are evaluated against every successfully built group.
  A group that makes a rule false is reported as a warning.
  --rule "SourceCount <= 10"
  --rule "IconType != 'privacy' || ID == 'privacy'"
  Default rules can also be listed under "rules:" in $HOME/.safecfg.yaml.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml, sarif")
	validateCmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file path (default: stdout)")
	validateCmd.Flags().StringArrayVar(&ruleExprs, "rule", nil, "Policy rule expression (repeatable)")
	validateCmd.Flags().IntVar(&parallel, "parallel", 4, "Maximum documents validated concurrently")
}

// runValidate implements the core logic for the validate command.
func runValidate(ctx context.Context, paths []string) error {
	// Rules from flags plus defaults from the tool config.
	exprs := append(viper.GetStringSlice("rules"), ruleExprs...)
	compiled, err := rules.Compile(exprs)
	if err != nil {
		return err
	}

	writer := os.Stdout
	if outFile != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = file.Close() // Best-effort cleanup
		}()
		writer = file
	}
	formatter, err := newFormatter(writer, format)
	if err != nil {
		return err
	}

	report := output.NewReport(version.Get().String())

	results := make([]output.DocumentResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Debug("validating document", "path", path)
			results[i] = validateDocument(path, compiled)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		report.AddDocument(res)
	}
	report.Finish()

	slog.Info("validation complete",
		"documents", report.Summary.Documents,
		"groups", report.Summary.Groups,
		"errors", report.Summary.Errors,
		"warnings", report.Summary.Warnings)

	if err := formatter.Format(report); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if report.HasErrors() {
		return fmt.Errorf("validation failed: %d errors, %d warnings",
			report.Summary.Errors, report.Summary.Warnings)
	}
	return nil
}

// validateDocument lints one document and evaluates policy rules against
// every group that built. Unreadable or unparseable documents yield a
// single structural finding instead of aborting the whole run.
func validateDocument(path string, compiled []rules.Rule) output.DocumentResult {
	res := output.DocumentResult{Path: path}

	doc, issues, err := config.Lint(path)
	if err != nil {
		res.Findings = append(res.Findings, output.Finding{
			Kind:     output.KindStructure,
			Severity: output.SeverityError,
			Message:  err.Error(),
		})
		return res
	}

	res.Groups = doc.GroupCount()
	for _, issue := range issues {
		res.Findings = append(res.Findings, output.FindingFromIssue(issue))
	}

	for _, group := range doc.Groups {
		for _, rule := range compiled {
			ok, err := rule.Eval(group)
			if err != nil {
				res.Findings = append(res.Findings, output.Finding{
					GroupID:  group.ID(),
					Kind:     output.KindRule,
					Severity: output.SeverityError,
					Message:  err.Error(),
				})
				continue
			}
			if !ok {
				res.Findings = append(res.Findings, output.RuleFinding(group.ID(), rule.Source))
			}
		}
	}
	return res
}
