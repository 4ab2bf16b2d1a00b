package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource(t *testing.T, id string) Source {
	t.Helper()
	s, err := NewSourceBuilder(SourceTypeStatic).
		SetID(id).
		SetTitleRef(201).
		SetSummaryRef(202).
		Build()
	require.NoError(t, err)
	return s
}

func TestGroupBuilder_Build(t *testing.T) {
	src := testSource(t, "permission-usage")

	group, err := NewGroupBuilder().
		SetID("privacy").
		SetTitleRef(101).
		SetSummaryRef(102).
		AddSource(src).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "privacy", group.ID())
	assert.Equal(t, 101, group.TitleRef())
	assert.Equal(t, 102, group.SummaryRef())
	assert.Equal(t, IconNone, group.StatelessIconType())
	assert.Equal(t, []Source{src}, group.Sources())
}

func TestGroupBuilder_IconType(t *testing.T) {
	src := testSource(t, "s1")

	group, err := NewGroupBuilder().
		SetID("privacy").
		SetTitleRef(101).
		SetSummaryRef(102).
		SetStatelessIconType(IconPrivacy).
		AddSource(src).
		Build()

	require.NoError(t, err)
	assert.Equal(t, IconPrivacy, group.StatelessIconType())

	// Out-of-range icon type fails naming the field.
	_, err = NewGroupBuilder().
		SetID("privacy").
		SetTitleRef(101).
		SetSummaryRef(102).
		SetStatelessIconType(StatelessIconType(42)).
		AddSource(src).
		Build()

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "statelessIconType", fieldErr.Field)
	assert.Equal(t, ReasonOutOfRange, fieldErr.Reason)
}

func TestGroupBuilder_IDValidation(t *testing.T) {
	src := testSource(t, "s1")

	tests := []struct {
		name   string
		build  func() (*SourcesGroup, error)
		reason FieldReason
	}{
		{
			name: "missing id",
			build: func() (*SourcesGroup, error) {
				return NewGroupBuilder().SetTitleRef(101).SetSummaryRef(102).AddSource(src).Build()
			},
			reason: ReasonMissing,
		},
		{
			name: "empty id",
			build: func() (*SourcesGroup, error) {
				return NewGroupBuilder().SetID("").SetTitleRef(101).SetSummaryRef(102).AddSource(src).Build()
			},
			reason: ReasonEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, err := tt.build()
			assert.Nil(t, group)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, "id", fieldErr.Field)
			assert.Equal(t, tt.reason, fieldErr.Reason)
		})
	}
}

func TestGroupBuilder_RefValidation(t *testing.T) {
	src := testSource(t, "s1")

	// Missing title ref.
	_, err := NewGroupBuilder().SetID("g").SetSummaryRef(102).AddSource(src).Build()
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
	assert.Equal(t, ReasonMissing, fieldErr.Reason)

	// Missing summary ref.
	_, err = NewGroupBuilder().SetID("g").SetTitleRef(101).AddSource(src).Build()
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "summary", fieldErr.Field)

	// Zero ref is the external system's null and is rejected.
	_, err = NewGroupBuilder().SetID("g").SetTitleRef(0).SetSummaryRef(102).AddSource(src).Build()
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
	assert.Equal(t, ReasonInvalid, fieldErr.Reason)
}

func TestGroupBuilder_EmptyGroup(t *testing.T) {
	group, err := NewGroupBuilder().
		SetID("privacy").
		SetTitleRef(101).
		SetSummaryRef(102).
		Build()

	assert.Nil(t, group)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "safety sources group empty", stateErr.Message)

	// The structural failure is not a FieldError.
	var fieldErr *FieldError
	assert.False(t, errors.As(err, &fieldErr))
}

func TestGroupBuilder_ZeroSource(t *testing.T) {
	_, err := NewGroupBuilder().
		SetID("privacy").
		SetTitleRef(101).
		SetSummaryRef(102).
		AddSource(Source{}).
		Build()

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "safetySource", fieldErr.Field)
	assert.Equal(t, ReasonInvalid, fieldErr.Reason)
}

func TestGroupBuilder_SetterOverwrites(t *testing.T) {
	src := testSource(t, "s1")

	group, err := NewGroupBuilder().
		SetID("first").
		SetID("second").
		SetTitleRef(1).
		SetTitleRef(101).
		SetSummaryRef(102).
		Build()
	assert.Nil(t, group)
	assert.Error(t, err) // still empty

	group, err = NewGroupBuilder().
		SetID("first").
		SetID("second").
		SetTitleRef(101).
		SetSummaryRef(102).
		AddSource(src).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "second", group.ID())
}

func TestSourcesGroup_EqualityAndHash(t *testing.T) {
	s1 := testSource(t, "s1")
	s2 := testSource(t, "s2")

	build := func(sources ...Source) *SourcesGroup {
		b := NewGroupBuilder().SetID("g").SetTitleRef(101).SetSummaryRef(102)
		for _, s := range sources {
			b.AddSource(s)
		}
		g, err := b.Build()
		require.NoError(t, err)
		return g
	}

	a := build(s1, s2)
	b := build(s1, s2)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	// Member order matters.
	c := build(s2, s1)
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())

	// Any field difference breaks equality.
	d, err := NewGroupBuilder().
		SetID("g").SetTitleRef(101).SetSummaryRef(102).
		SetStatelessIconType(IconPrivacy).
		AddSource(s1).AddSource(s2).
		Build()
	require.NoError(t, err)
	assert.False(t, a.Equal(d))

	assert.False(t, a.Equal(nil))
}

func TestSourcesGroup_SourcesImmutable(t *testing.T) {
	s1 := testSource(t, "s1")
	s2 := testSource(t, "s2")

	group, err := NewGroupBuilder().
		SetID("g").SetTitleRef(101).SetSummaryRef(102).
		AddSource(s1).
		Build()
	require.NoError(t, err)

	// Mutating the exposed slice is observable only on the copy.
	exposed := group.Sources()
	exposed[0] = s2
	assert.Equal(t, []Source{s1}, group.Sources())
}

func TestGroupBuilder_ReuseDoesNotAliasRecord(t *testing.T) {
	s1 := testSource(t, "s1")
	s2 := testSource(t, "s2")

	b := NewGroupBuilder().SetID("g").SetTitleRef(101).SetSummaryRef(102).AddSource(s1)
	first, err := b.Build()
	require.NoError(t, err)

	// Further accumulation in the builder must not leak into the record.
	b.AddSource(s2)
	assert.Equal(t, 1, first.SourceCount())
	assert.Equal(t, []Source{s1}, first.Sources())

	second, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, second.SourceCount())
	assert.False(t, first.Equal(second))
}

func TestSourcesGroup_String(t *testing.T) {
	group, err := NewGroupBuilder().
		SetID("privacy").
		SetTitleRef(101).
		SetSummaryRef(102).
		AddSource(testSource(t, "s1")).
		Build()
	require.NoError(t, err)

	// Every field appears by name in the debug rendering.
	str := group.String()
	assert.Contains(t, str, `id="privacy"`)
	assert.Contains(t, str, "titleRef=101")
	assert.Contains(t, str, "summaryRef=102")
	assert.Contains(t, str, "statelessIconType=none")
	assert.Contains(t, str, `id="s1"`)
}
