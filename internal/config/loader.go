package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Raw document shapes as decoded from YAML, before the builders run.
// Pointer fields distinguish "absent" from "set to the zero value" so the
// builders see exactly what the document said.
type rawDocument struct {
	Version string     `yaml:"version"`
	Groups  []rawGroup `yaml:"groups"`
}

type rawGroup struct {
	ID            string      `yaml:"id"`
	Title         *int        `yaml:"title"`
	Summary       *int        `yaml:"summary"`
	StatelessIcon *string     `yaml:"statelessIcon"`
	Sources       []rawSource `yaml:"sources"`
}

type rawSource struct {
	ID      string  `yaml:"id"`
	Type    string  `yaml:"type"`
	Title   *int    `yaml:"title"`
	Summary *int    `yaml:"summary"`
	Package *string `yaml:"package"`
}

// Issue is one lint finding: a group (or document, when GroupID is empty)
// together with the validation error it produced.
type Issue struct {
	GroupID string
	Err     error
}

// Load reads, schema-checks, and builds a document from a YAML file,
// aborting on the first invalid entry.
func Load(path string) (*Document, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data)
}

// LoadReader builds a document from an io.Reader. Useful for tests with
// in-memory YAML data.
func LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes builds a document from raw YAML bytes.
func LoadBytes(data []byte) (*Document, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{SchemaVersion: raw.Version}
	for i, rg := range raw.Groups {
		group, err := buildGroup(rg)
		if err != nil {
			return nil, fmt.Errorf("group %d (%q): %w", i, rg.ID, err)
		}
		doc.Groups = append(doc.Groups, group)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Lint reads a YAML file and collects every validation issue instead of
// aborting on the first. The returned error covers only I/O, parse, and
// schema failures; builder and document failures land in the issue list.
// The returned document holds whatever groups did build.
func Lint(path string) (*Document, []Issue, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, nil, err
	}
	return LintBytes(data)
}

// LintBytes collects every validation issue from raw YAML bytes.
func LintBytes(data []byte) (*Document, []Issue, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, nil, err
	}

	var issues []Issue
	doc := &Document{SchemaVersion: raw.Version}
	for _, rg := range raw.Groups {
		group, err := buildGroup(rg)
		if err != nil {
			issues = append(issues, Issue{GroupID: rg.ID, Err: err})
			continue
		}
		doc.Groups = append(doc.Groups, group)
	}

	// Document-level rules still apply to whatever did build.
	if err := doc.Validate(); err != nil {
		issues = append(issues, Issue{Err: err})
	}
	return doc, issues, nil
}

// readDocument opens the file through an os.Root scoped to its directory
// so a document path cannot traverse outside it via symlinks.
func readDocument(path string) ([]byte, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open document directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// decodeRaw schema-checks the bytes and strictly decodes the raw shape.
func decodeRaw(data []byte) (rawDocument, error) {
	var raw rawDocument
	if err := validateSchema(data); err != nil {
		return raw, err
	}
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.Strict()); err != nil {
		return raw, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return raw, nil
}

// buildGroup drives a GroupBuilder from one raw group entry.
func buildGroup(rg rawGroup) (*SourcesGroup, error) {
	b := NewGroupBuilder()
	if rg.ID != "" {
		b.SetID(rg.ID)
	}
	if rg.Title != nil {
		b.SetTitleRef(*rg.Title)
	}
	if rg.Summary != nil {
		b.SetSummaryRef(*rg.Summary)
	}
	if rg.StatelessIcon != nil {
		iconType, err := NewStatelessIconType(*rg.StatelessIcon)
		if err != nil {
			return nil, outOfRangeErr("statelessIconType")
		}
		b.SetStatelessIconType(iconType)
	}
	for i, rs := range rg.Sources {
		source, err := buildSource(rs)
		if err != nil {
			return nil, fmt.Errorf("source %d (%q): %w", i, rs.ID, err)
		}
		b.AddSource(source)
	}
	return b.Build()
}

// buildSource drives a SourceBuilder from one raw source entry.
func buildSource(rs rawSource) (Source, error) {
	sourceType, err := NewSourceType(rs.Type)
	if err != nil {
		if rs.Type == "" {
			return Source{}, missingErr("type")
		}
		return Source{}, outOfRangeErr("type")
	}

	b := NewSourceBuilder(sourceType)
	if rs.ID != "" {
		b.SetID(rs.ID)
	}
	if rs.Title != nil {
		b.SetTitleRef(*rs.Title)
	}
	if rs.Summary != nil {
		b.SetSummaryRef(*rs.Summary)
	}
	if rs.Package != nil {
		b.SetPackageName(*rs.Package)
	}
	return b.Build()
}
