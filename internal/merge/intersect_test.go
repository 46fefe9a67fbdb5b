package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectRangeTightening(t *testing.T) {
	tests := []struct {
		name  string
		left  map[string]any
		right map[string]any
		want  map[string]any
	}{
		{
			name:  "gt vs gt keeps larger",
			left:  map[string]any{"a": map[string]any{"$gt": 4}},
			right: map[string]any{"a": map[string]any{"$gt": 5}},
			want:  map[string]any{"a": map[string]any{"$gt": 5}},
		},
		{
			name:  "gt vs gte keeps larger gte",
			left:  map[string]any{"a": map[string]any{"$gt": 4}},
			right: map[string]any{"a": map[string]any{"$gte": 5}},
			want:  map[string]any{"a": map[string]any{"$gte": 5}},
		},
		{
			name:  "same value tie prefers exclusive",
			left:  map[string]any{"a": map[string]any{"$gt": 5}},
			right: map[string]any{"a": map[string]any{"$gte": 5}},
			want:  map[string]any{"a": map[string]any{"$gt": 5}},
		},
		{
			name:  "two-sided bound merge",
			left:  map[string]any{"a": map[string]any{"$gt": 5}},
			right: map[string]any{"a": map[string]any{"$lte": 8}},
			want:  map[string]any{"a": map[string]any{"$gt": 5, "$lte": 8}},
		},
		{
			name:  "upper bound tightening",
			left:  map[string]any{"a": map[string]any{"$lt": 9}},
			right: map[string]any{"a": map[string]any{"$lte": 8}},
			want:  map[string]any{"a": map[string]any{"$lte": 8}},
		},
		{
			name:  "upper tie prefers exclusive",
			left:  map[string]any{"a": map[string]any{"$lt": 8}},
			right: map[string]any{"a": map[string]any{"$lte": 8}},
			want:  map[string]any{"a": map[string]any{"$lt": 8}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Intersect(tt.left, tt.right)
			require.NoError(t, err)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("merged fragment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntersectSets(t *testing.T) {
	tests := []struct {
		name  string
		left  map[string]any
		right map[string]any
		want  map[string]any
	}{
		{
			name:  "in sets intersect",
			left:  map[string]any{"a": map[string]any{"$in": []any{1, 2, 3}}},
			right: map[string]any{"a": map[string]any{"$in": []any{2, 3, 4}}},
			want:  map[string]any{"a": map[string]any{"$in": []any{2, 3}}},
		},
		{
			name:  "ne and nin union sorted",
			left:  map[string]any{"a": map[string]any{"$ne": 1}},
			right: map[string]any{"a": map[string]any{"$nin": []any{2, 3}}},
			want:  map[string]any{"a": map[string]any{"$nin": []any{1, 2, 3}}},
		},
		{
			name:  "duplicate exclusions collapse",
			left:  map[string]any{"a": map[string]any{"$ne": 2}},
			right: map[string]any{"a": map[string]any{"$nin": []any{2, 1}}},
			want:  map[string]any{"a": map[string]any{"$nin": []any{1, 2}}},
		},
		{
			name:  "in set restricted by merged range",
			left:  map[string]any{"a": map[string]any{"$in": []any{1, 5, 9}}},
			right: map[string]any{"a": map[string]any{"$gt": 2, "$lt": 7}},
			want:  map[string]any{"a": map[string]any{"$gt": 2, "$lt": 7, "$in": []any{5}}},
		},
		{
			name:  "empty in intersection is preserved",
			left:  map[string]any{"a": map[string]any{"$in": []any{1, 2}}},
			right: map[string]any{"a": map[string]any{"$in": []any{3}}},
			want:  map[string]any{"a": map[string]any{"$in": []any{}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Intersect(tt.left, tt.right)
			require.NoError(t, err)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("merged fragment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntersectEquality(t *testing.T) {
	t.Run("consistent eq subsumes range", func(t *testing.T) {
		got, ok, err := Intersect(
			map[string]any{"a": map[string]any{"$eq": 5}},
			map[string]any{"a": map[string]any{"$gt": 4, "$lte": 8}},
		)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": map[string]any{"$eq": 5}}, got)
	})

	t.Run("literal counts as implicit eq", func(t *testing.T) {
		got, ok, err := Intersect(
			map[string]any{"a": 5},
			map[string]any{"a": map[string]any{"$gt": 4}},
		)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": map[string]any{"$eq": 5}}, got)
	})

	t.Run("matching literals collapse to eq", func(t *testing.T) {
		got, ok, err := Intersect(
			map[string]any{"a": "x"},
			map[string]any{"a": "x"},
		)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": map[string]any{"$eq": "x"}}, got)
	})

	t.Run("eq outside range is unsatisfiable", func(t *testing.T) {
		_, _, err := Intersect(
			map[string]any{"a": map[string]any{"$eq": 9}},
			map[string]any{"a": map[string]any{"$lte": 8}},
		)
		require.ErrorIs(t, err, ErrUnsatisfiable)
	})

	t.Run("eq outside in set is unsatisfiable", func(t *testing.T) {
		_, _, err := Intersect(
			map[string]any{"a": map[string]any{"$eq": 9}},
			map[string]any{"a": map[string]any{"$in": []any{1, 2}}},
		)
		require.ErrorIs(t, err, ErrUnsatisfiable)
	})

	t.Run("conflicting eq values are unsatisfiable", func(t *testing.T) {
		_, _, err := Intersect(
			map[string]any{"a": 1},
			map[string]any{"a": 2},
		)
		require.ErrorIs(t, err, ErrUnsatisfiable)
	})

	t.Run("eq values equal across numeric types", func(t *testing.T) {
		got, ok, err := Intersect(
			map[string]any{"a": 5},
			map[string]any{"a": float64(5)},
		)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": map[string]any{"$eq": 5}}, got)
	})
}

func TestIntersectDisjointFieldsUnion(t *testing.T) {
	left := map[string]any{"a": 1, "b": map[string]any{"$gt": 2}}
	right := map[string]any{"c": map[string]any{"$in": []any{"x"}}}

	ab, ok, err := Intersect(left, right)
	require.NoError(t, err)
	require.True(t, ok)
	ba, ok, err := Intersect(right, left)
	require.NoError(t, err)
	require.True(t, ok)

	want := map[string]any{
		"a": 1,
		"b": map[string]any{"$gt": 2},
		"c": map[string]any{"$in": []any{"x"}},
	}
	assert.Equal(t, want, ab)
	assert.Equal(t, want, ba, "disjoint union must be order-independent")
}

func TestIntersectFallbackSignals(t *testing.T) {
	t.Run("nested comparison value", func(t *testing.T) {
		_, ok, err := Intersect(
			map[string]any{"a": map[string]any{"$eq": map[string]any{"b": 1}}},
			map[string]any{"a": map[string]any{"$gt": 2}},
		)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-comparison subkey on both sides", func(t *testing.T) {
		_, ok, err := Intersect(
			map[string]any{"a": map[string]any{"$regex": "^x"}},
			map[string]any{"a": map[string]any{"$regex": "^y"}},
		)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed in operand", func(t *testing.T) {
		_, ok, err := Intersect(
			map[string]any{"a": map[string]any{"$in": 3}},
			map[string]any{"a": map[string]any{"$gt": 2}},
		)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestIntersectExtrasRideAlong(t *testing.T) {
	got, ok, err := Intersect(
		map[string]any{"a": map[string]any{"$regex": "^x", "$gt": 3}},
		map[string]any{"a": map[string]any{"$gte": 5}},
	)
	require.NoError(t, err)
	require.True(t, ok)
	want := map[string]any{"a": map[string]any{"$gte": 5, "$regex": "^x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestIntersectDoesNotMutateInputs(t *testing.T) {
	left := map[string]any{"a": map[string]any{"$gt": 4}, "b": 1}
	right := map[string]any{"a": map[string]any{"$gt": 5}}
	leftSnap := map[string]any{"a": map[string]any{"$gt": 4}, "b": 1}
	rightSnap := map[string]any{"a": map[string]any{"$gt": 5}}

	got, ok, err := Intersect(left, right)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, leftSnap, left)
	assert.Equal(t, rightSnap, right)

	// Mutating the result must not leak into the inputs either.
	got["a"].(map[string]any)["$gt"] = 99
	got["b"] = 99
	assert.Equal(t, leftSnap, left)
	assert.Equal(t, rightSnap, right)
}
