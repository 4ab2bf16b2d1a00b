package config

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// SourceType classifies how a safety source provides its state.
type SourceType int

const (
	// SourceTypeStatic sources render fixed title and summary text.
	SourceTypeStatic SourceType = 1
	// SourceTypeDynamic sources are backed by a package that pushes state.
	SourceTypeDynamic SourceType = 2
	// SourceTypeIssueOnly sources surface issues but have no entry of their own.
	SourceTypeIssueOnly SourceType = 3
)

// NewSourceType parses a SourceType from its string form.
func NewSourceType(s string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return SourceTypeStatic, nil
	case "dynamic":
		return SourceTypeDynamic, nil
	case "issue-only":
		return SourceTypeIssueOnly, nil
	default:
		return 0, fmt.Errorf("invalid source type: %s", s)
	}
}

// IsValid reports whether the value is one of the declared source types.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeStatic, SourceTypeDynamic, SourceTypeIssueOnly:
		return true
	default:
		return false
	}
}

// String returns the string representation used in documents and output.
func (t SourceType) String() string {
	switch t {
	case SourceTypeStatic:
		return "static"
	case SourceTypeDynamic:
		return "dynamic"
	case SourceTypeIssueOnly:
		return "issue-only"
	default:
		return "unknown"
	}
}

// Source is an immutable safety source entry, a member of a SourcesGroup.
// Construct one with SourceBuilder; the zero Source is not a valid member.
type Source struct {
	id          string
	sourceType  SourceType
	titleRef    int
	summaryRef  int
	packageName string
}

// ID returns the identifier of this source.
func (s Source) ID() string { return s.id }

// Type returns the source type.
func (s Source) Type() SourceType { return s.sourceType }

// TitleRef returns the opaque resource reference of the title.
func (s Source) TitleRef() int { return s.titleRef }

// SummaryRef returns the opaque resource reference of the summary.
func (s Source) SummaryRef() int { return s.summaryRef }

// PackageName returns the owning package of a dynamic source, or "".
func (s Source) PackageName() string { return s.packageName }

// IsZero reports whether the source is the zero value, i.e. was never built.
func (s Source) IsZero() bool { return s == Source{} }

// Equal reports structural equality of all fields.
func (s Source) Equal(other Source) bool { return s == other }

// Hash returns a structural 64-bit hash consistent with Equal.
func (s Source) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d|%d|%s", s.id, s.sourceType, s.titleRef, s.summaryRef, s.packageName)
	return h.Sum64()
}

func (s Source) String() string {
	return fmt.Sprintf("Source{id=%q, type=%s, titleRef=%d, summaryRef=%d, packageName=%q}",
		s.id, s.sourceType, s.titleRef, s.summaryRef, s.packageName)
}

// SourceBuilder accumulates fields for a Source and validates them in Build.
// A builder is single-use and not safe for concurrent mutation.
type SourceBuilder struct {
	sourceType  SourceType
	id          *string
	titleRef    *int
	summaryRef  *int
	packageName *string
}

// NewSourceBuilder creates a builder for a source of the given type.
func NewSourceBuilder(t SourceType) *SourceBuilder {
	return &SourceBuilder{sourceType: t}
}

// SetID sets the source identifier.
func (b *SourceBuilder) SetID(id string) *SourceBuilder {
	b.id = &id
	return b
}

// SetTitleRef sets the resource reference of the title.
func (b *SourceBuilder) SetTitleRef(ref int) *SourceBuilder {
	b.titleRef = &ref
	return b
}

// SetSummaryRef sets the resource reference of the summary.
func (b *SourceBuilder) SetSummaryRef(ref int) *SourceBuilder {
	b.summaryRef = &ref
	return b
}

// SetPackageName sets the owning package of a dynamic source.
func (b *SourceBuilder) SetPackageName(name string) *SourceBuilder {
	b.packageName = &name
	return b
}

// Build validates the accumulated fields and returns the immutable Source.
// Validation runs atomically; on failure no partially-valid source exists.
func (b *SourceBuilder) Build() (Source, error) {
	if !b.sourceType.IsValid() {
		return Source{}, outOfRangeErr("type")
	}
	id, err := validateString(b.id, "id", true, false)
	if err != nil {
		return Source{}, err
	}

	// Issue-only sources have no visible entry, so no title or summary.
	needsText := b.sourceType != SourceTypeIssueOnly
	titleRef, err := validateRef(b.titleRef, "title", needsText)
	if err != nil {
		return Source{}, err
	}
	summaryRef, err := validateRef(b.summaryRef, "summary", needsText)
	if err != nil {
		return Source{}, err
	}

	needsPackage := b.sourceType == SourceTypeDynamic || b.sourceType == SourceTypeIssueOnly
	pkg, err := validateString(b.packageName, "packageName", needsPackage, false)
	if err != nil {
		return Source{}, err
	}

	return Source{
		id:          id,
		sourceType:  b.sourceType,
		titleRef:    titleRef,
		summaryRef:  summaryRef,
		packageName: pkg,
	}, nil
}
