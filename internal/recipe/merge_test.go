package recipe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_OrderSensitive(t *testing.T) {
	a := Document{"x": 1, "y": map[string]any{"a": 1}}
	b := Document{"x": 2, "y": map[string]any{"b": 2}}

	got := Merge(a, b)
	want := Document{"x": 2, "y": map[string]any{"a": 1, "b": 2}}
	assert.Empty(t, cmp.Diff(want, got), "later documents override scalars, union nested maps")

	got = Merge(b, a)
	want = Document{"x": 1, "y": map[string]any{"a": 1, "b": 2}}
	assert.Empty(t, cmp.Diff(want, got), "reversed order flips the scalar winner")
}

func TestMerge_FoldMatchesSequence(t *testing.T) {
	a := Document{"x": 1, "y": map[string]any{"a": 1}}
	b := Document{"x": 2, "y": map[string]any{"b": 2}, "z": "zzz"}
	c := Document{"y": map[string]any{"a": 3, "c": 4}}

	direct := Merge(a, b, c)
	folded := Merge(Merge(a, b), c)

	assert.Empty(t, cmp.Diff(direct, folded), "left-to-right fold must match direct sequence merge")
}

func TestMerge_SequencesReplace(t *testing.T) {
	a := Document{"list": []any{"one", "two"}}
	b := Document{"list": []any{"three"}}

	got := Merge(a, b)
	assert.Empty(t, cmp.Diff(Document{"list": []any{"three"}}, got),
		"sequences use replacement semantics, no deduplication or concatenation")
}

func TestMerge_ScalarReplacesMap(t *testing.T) {
	a := Document{"k": map[string]any{"nested": true}}
	b := Document{"k": "flat"}

	got := Merge(a, b)
	assert.Empty(t, cmp.Diff(Document{"k": "flat"}, got))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := Document{"y": map[string]any{"a": 1}}
	b := Document{"y": map[string]any{"b": 2}}

	_ = Merge(a, b)

	require.Empty(t, cmp.Diff(Document{"y": map[string]any{"a": 1}}, a))
	require.Empty(t, cmp.Diff(Document{"y": map[string]any{"b": 2}}, b))
}

func TestMerge_Empty(t *testing.T) {
	got := Merge()
	assert.Empty(t, cmp.Diff(Document{}, got))
}
