package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// supportedSchemaMajor is the document schema major version this build reads.
const supportedSchemaMajor = 1

// Document is a whole safety-source configuration document: a schema
// version plus an ordered list of groups. Groups are immutable records;
// the Document aggregate itself is assembled by the loader.
type Document struct {
	SchemaVersion string
	Groups        []*SourcesGroup
}

// Validate checks document-level structure: a parseable, supported schema
// version, at least one group, and unique group and source identifiers
// across the whole document. Violations are StateErrors, since they are
// composition rules rather than single-field format rules.
func (d *Document) Validate() error {
	v, err := semver.NewVersion(d.SchemaVersion)
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", d.SchemaVersion, err)
	}
	if v.Major() != supportedSchemaMajor {
		return stateErr(fmt.Sprintf("unsupported schema version %s (supported major: %d)",
			d.SchemaVersion, supportedSchemaMajor))
	}
	if len(d.Groups) == 0 {
		return stateErr("document contains no sources groups")
	}

	groupIDs := make(map[string]bool, len(d.Groups))
	sourceIDs := make(map[string]bool)
	for _, g := range d.Groups {
		if groupIDs[g.ID()] {
			return stateErr(fmt.Sprintf("duplicate group id %q", g.ID()))
		}
		groupIDs[g.ID()] = true

		for _, s := range g.sources {
			if sourceIDs[s.ID()] {
				return stateErr(fmt.Sprintf("duplicate source id %q", s.ID()))
			}
			sourceIDs[s.ID()] = true
		}
	}
	return nil
}

// Group returns the group with the given id, or nil when absent.
func (d *Document) Group(id string) *SourcesGroup {
	for _, g := range d.Groups {
		if g.ID() == id {
			return g
		}
	}
	return nil
}

// GroupCount returns the number of groups in the document.
func (d *Document) GroupCount() int { return len(d.Groups) }
