// Package config models safety-center source configuration: immutable
// SourcesGroup and Source records produced by deferred-validation builders,
// and the YAML document loader that drives them. The records themselves do
// no I/O and no logging; every validation failure surfaces as a FieldError
// or StateError from Build.
package config

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// SourcesGroup is an immutable named group of safety sources. Once built it
// is freely shareable across goroutines; the member slice is never exposed
// by reference.
type SourcesGroup struct {
	id                string
	titleRef          int
	summaryRef        int
	statelessIconType StatelessIconType
	sources           []Source
}

// ID returns the identifier of this group.
func (g *SourcesGroup) ID() string { return g.id }

// TitleRef returns the opaque resource reference of the group title.
func (g *SourcesGroup) TitleRef() int { return g.titleRef }

// SummaryRef returns the opaque resource reference of the group summary.
func (g *SourcesGroup) SummaryRef() int { return g.summaryRef }

// StatelessIconType returns the icon shown when all sources are stateless.
func (g *SourcesGroup) StatelessIconType() StatelessIconType { return g.statelessIconType }

// Sources returns the ordered members of this group. The returned slice is
// a copy; mutating it does not affect the group.
func (g *SourcesGroup) Sources() []Source {
	out := make([]Source, len(g.sources))
	copy(out, g.sources)
	return out
}

// SourceCount returns the number of members without copying them.
func (g *SourcesGroup) SourceCount() int { return len(g.sources) }

// Equal reports structural equality of all fields, member order included.
func (g *SourcesGroup) Equal(other *SourcesGroup) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil {
		return false
	}
	if g.id != other.id ||
		g.titleRef != other.titleRef ||
		g.summaryRef != other.summaryRef ||
		g.statelessIconType != other.statelessIconType ||
		len(g.sources) != len(other.sources) {
		return false
	}
	for i := range g.sources {
		if g.sources[i] != other.sources[i] {
			return false
		}
	}
	return true
}

// Hash returns a structural 64-bit hash consistent with Equal, usable as a
// key in hash containers.
func (g *SourcesGroup) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(g.id))
	var buf [8]byte
	for _, n := range []uint64{uint64(g.titleRef), uint64(g.summaryRef), uint64(g.statelessIconType)} {
		binary.LittleEndian.PutUint64(buf[:], n)
		h.Write(buf[:])
	}
	for _, s := range g.sources {
		binary.LittleEndian.PutUint64(buf[:], s.Hash())
		h.Write(buf[:])
	}
	return h.Sum64()
}

// String renders every field by name for diagnostic logging.
func (g *SourcesGroup) String() string {
	ids := make([]string, len(g.sources))
	for i, s := range g.sources {
		ids[i] = s.String()
	}
	return fmt.Sprintf("SourcesGroup{id=%q, titleRef=%d, summaryRef=%d, statelessIconType=%s, sources=[%s]}",
		g.id, g.titleRef, g.summaryRef, g.statelessIconType, strings.Join(ids, ", "))
}

// GroupBuilder accumulates fields for a SourcesGroup and validates them
// atomically in Build. A builder is a short-lived, single-use accumulator
// and is not safe for concurrent mutation; confine it to one goroutine.
type GroupBuilder struct {
	id                *string
	titleRef          *int
	summaryRef        *int
	statelessIconType *StatelessIconType
	sources           []Source
	err               error
}

// NewGroupBuilder creates an empty builder for a SourcesGroup.
func NewGroupBuilder() *GroupBuilder {
	return &GroupBuilder{}
}

// SetID sets the group identifier, overwriting any earlier value.
func (b *GroupBuilder) SetID(id string) *GroupBuilder {
	b.id = &id
	return b
}

// SetTitleRef sets the resource reference of the group title.
func (b *GroupBuilder) SetTitleRef(ref int) *GroupBuilder {
	b.titleRef = &ref
	return b
}

// SetSummaryRef sets the resource reference of the group summary.
func (b *GroupBuilder) SetSummaryRef(ref int) *GroupBuilder {
	b.summaryRef = &ref
	return b
}

// SetStatelessIconType sets the stateless icon type. When never called the
// group defaults to IconNone.
func (b *GroupBuilder) SetStatelessIconType(t StatelessIconType) *GroupBuilder {
	b.statelessIconType = &t
	return b
}

// AddSource appends one member. A zero Source is rejected; the failure is
// recorded and returned from Build so chained configuration stays intact.
func (b *GroupBuilder) AddSource(s Source) *GroupBuilder {
	if s.IsZero() {
		if b.err == nil {
			b.err = invalidErr("safetySource")
		}
		return b
	}
	b.sources = append(b.sources, s)
	return b
}

// Build validates all accumulated fields and returns the immutable group.
// Validation is atomic: either every check passes and a fully-valid record
// is returned, or the first failure is returned and nothing is constructed.
func (b *GroupBuilder) Build() (*SourcesGroup, error) {
	if b.err != nil {
		return nil, b.err
	}
	id, err := validateString(b.id, "id", true, false)
	if err != nil {
		return nil, err
	}
	titleRef, err := validateRef(b.titleRef, "title", true)
	if err != nil {
		return nil, err
	}
	summaryRef, err := validateRef(b.summaryRef, "summary", true)
	if err != nil {
		return nil, err
	}
	iconType := IconNone
	if b.statelessIconType != nil {
		if !b.statelessIconType.IsValid() {
			return nil, outOfRangeErr("statelessIconType")
		}
		iconType = *b.statelessIconType
	}
	if len(b.sources) == 0 {
		return nil, stateErr("safety sources group empty")
	}

	// Copy the member slice so reusing the builder can never alias the record.
	sources := make([]Source, len(b.sources))
	copy(sources, b.sources)

	return &SourcesGroup{
		id:                id,
		titleRef:          titleRef,
		summaryRef:        summaryRef,
		statelessIconType: iconType,
		sources:           sources,
	}, nil
}
