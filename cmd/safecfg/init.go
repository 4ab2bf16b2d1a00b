package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/safecfg-dev/safecfg/internal/config"
)

// Scaffold shapes marshalled into the generated document.
type scaffoldDocument struct {
	Version string          `yaml:"version"`
	Groups  []scaffoldGroup `yaml:"groups"`
}

type scaffoldGroup struct {
	ID            string           `yaml:"id"`
	Title         int              `yaml:"title"`
	Summary       int              `yaml:"summary"`
	StatelessIcon string           `yaml:"statelessIcon,omitempty"`
	Sources       []scaffoldSource `yaml:"sources"`
}

type scaffoldSource struct {
	ID      string `yaml:"id"`
	Type    string `yaml:"type"`
	Title   int    `yaml:"title,omitempty"`
	Summary int    `yaml:"summary,omitempty"`
	Package string `yaml:"package,omitempty"`
}

type initOptions struct {
	Path       string
	GroupID    string
	Title      string
	Summary    string
	IconType   string
	SourceID   string
	SourceType string
	Package    string
}

// initCmd scaffolds a new configuration document interactively.
var initCmd = &cobra.Command{
	Use:   "init [document.yaml]",
	Short: "Create a new configuration document interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		opts := initOptions{Path: "safety_sources.yaml"}
		if len(args) == 1 {
			opts.Path = args[0]
		}
		return runInit(opts)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(opts initOptions) error {
	if err := huh.NewInput().
		Title("Group ID").
		Description("Identifier of the first sources group").
		Validate(requireNonEmpty).
		Value(&opts.GroupID).
		Run(); err != nil {
		return err
	}

	if err := huh.NewInput().
		Title("Group title resource reference").
		Validate(requireRef).
		Value(&opts.Title).
		Run(); err != nil {
		return err
	}

	if err := huh.NewInput().
		Title("Group summary resource reference").
		Validate(requireRef).
		Value(&opts.Summary).
		Run(); err != nil {
		return err
	}

	if err := huh.NewSelect[string]().
		Title("Stateless icon type").
		Options(
			huh.NewOption("None", "none").Selected(true),
			huh.NewOption("Privacy", "privacy"),
		).
		Value(&opts.IconType).
		Run(); err != nil {
		return err
	}

	if err := huh.NewInput().
		Title("First source ID").
		Validate(requireNonEmpty).
		Value(&opts.SourceID).
		Run(); err != nil {
		return err
	}

	if err := huh.NewSelect[string]().
		Title("Source type").
		Options(
			huh.NewOption("Static", "static").Selected(true),
			huh.NewOption("Dynamic", "dynamic"),
			huh.NewOption("Issue-only", "issue-only"),
		).
		Value(&opts.SourceType).
		Run(); err != nil {
		return err
	}

	if opts.SourceType != "static" {
		if err := huh.NewInput().
			Title("Source package name").
			Validate(requireNonEmpty).
			Value(&opts.Package).
			Run(); err != nil {
			return err
		}
	}

	data, err := renderScaffold(opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.Path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	fmt.Printf("Created %s\n", opts.Path)
	return nil
}

// renderScaffold marshals the wizard answers into YAML and checks the
// result through the real loader so init can never emit an invalid document.
func renderScaffold(opts initOptions) ([]byte, error) {
	title, _ := strconv.Atoi(opts.Title)
	summary, _ := strconv.Atoi(opts.Summary)

	source := scaffoldSource{
		ID:      opts.SourceID,
		Type:    opts.SourceType,
		Package: opts.Package,
	}
	if opts.SourceType != "issue-only" {
		// Placeholder refs for the source; the group refs came from the wizard.
		source.Title = 1
		source.Summary = 2
	}

	doc := scaffoldDocument{
		Version: "1.0.0",
		Groups: []scaffoldGroup{{
			ID:            opts.GroupID,
			Title:         title,
			Summary:       summary,
			StatelessIcon: opts.IconType,
			Sources:       []scaffoldSource{source},
		}},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	if _, err := config.LoadBytes(data); err != nil {
		return nil, fmt.Errorf("generated document is invalid: %w", err)
	}
	return data, nil
}

func requireNonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func requireRef(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}
