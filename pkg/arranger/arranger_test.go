package arranger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func span(start, end int) Span {
	return Span{From: base.Add(time.Duration(start) * time.Hour), To: base.Add(time.Duration(end) * time.Hour)}
}

type placement struct {
	column  int
	columns int
	item    Span
}

func TestArrange(t *testing.T) {
	testCases := []struct {
		name  string
		items []Span
		want  []placement
	}{
		{
			name:  "single item",
			items: []Span{span(0, 1)},
			want:  []placement{{1, 1, span(0, 1)}},
		},
		{
			name:  "same start and end",
			items: []Span{span(0, 1), span(0, 1)},
			want:  []placement{{1, 2, span(0, 1)}, {2, 2, span(0, 1)}},
		},
		{
			name:  "same start",
			items: []Span{span(0, 1), span(0, 2)},
			want:  []placement{{1, 2, span(0, 1)}, {2, 2, span(0, 2)}},
		},
		{
			name:  "same end",
			items: []Span{span(0, 2), span(1, 2)},
			want:  []placement{{1, 2, span(0, 2)}, {2, 2, span(1, 2)}},
		},
		{
			name:  "partial overlap",
			items: []Span{span(0, 2), span(1, 3)},
			want:  []placement{{1, 2, span(0, 2)}, {2, 2, span(1, 3)}},
		},
		{
			name:  "full overlap given out of order",
			items: []Span{span(1, 2), span(0, 3)},
			want:  []placement{{1, 2, span(0, 3)}, {2, 2, span(1, 2)}},
		},
		{
			name:  "touching items do not overlap",
			items: []Span{span(1, 2), span(2, 3)},
			want:  []placement{{1, 1, span(1, 2)}, {1, 1, span(2, 3)}},
		},
		{
			name:  "overlapping pair followed by a separate item",
			items: []Span{span(1, 2), span(1, 2), span(2, 3)},
			want:  []placement{{1, 2, span(1, 2)}, {2, 2, span(1, 2)}, {1, 1, span(2, 3)}},
		},
		{
			name:  "chain reuses freed columns",
			items: []Span{span(1, 3), span(2, 5), span(4, 6), span(5, 7), span(6, 8), span(7, 9)},
			want: []placement{
				{1, 2, span(1, 3)}, {2, 2, span(2, 5)}, {1, 2, span(4, 6)},
				{2, 2, span(5, 7)}, {1, 2, span(6, 8)}, {2, 2, span(7, 9)},
			},
		},
		{
			name:  "three overlapping items",
			items: []Span{span(1, 4), span(2, 4), span(3, 5)},
			want:  []placement{{1, 3, span(1, 4)}, {2, 3, span(2, 4)}, {3, 3, span(3, 5)}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			results := Arrange(tc.items)
			require.Len(t, results, len(tc.want))
			for i, want := range tc.want {
				assert.Equal(t, want.column, results[i].Column, "column of result %d", i)
				assert.Equal(t, want.columns, results[i].Columns, "columns of result %d", i)
				assert.Equal(t, want.item, results[i].Item, "item of result %d", i)
			}
		})
	}
}

func TestArrange_Empty(t *testing.T) {
	assert.Empty(t, Arrange([]Span{}))
	assert.Empty(t, Arrange[Span](nil))
}

func TestArrange_ReversedSpanIsKept(t *testing.T) {
	results := Arrange([]Span{span(3, 1)})

	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Column)
	assert.Equal(t, 1, results[0].Columns)
}

func TestArrange_RandomizedProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		items := make([]Span, rng.Intn(12))
		for i := range items {
			start := rng.Intn(48)
			items[i] = span(start, start+1+rng.Intn(6))
		}

		results := Arrange(items)
		require.Len(t, results, len(items))

		seen := make(map[Span]int)
		for _, item := range items {
			seen[item]++
		}
		for _, r := range results {
			seen[r.Item]--
			assert.GreaterOrEqual(t, r.Column, 1)
			assert.LessOrEqual(t, r.Column, r.Columns)
		}
		for item, count := range seen {
			assert.Zero(t, count, "item %v not returned exactly once", item)
		}

		for i := range results {
			for j := i + 1; j < len(results); j++ {
				a, b := results[i], results[j]
				if a.Item.From.Before(b.Item.To) && b.Item.From.Before(a.Item.To) {
					assert.NotEqual(t, a.Column, b.Column, "overlapping %v and %v share a column", a.Item, b.Item)
					assert.Equal(t, a.Columns, b.Columns, "overlapping %v and %v are in different groups", a.Item, b.Item)
				}
			}
		}
	}
}

func TestNoop(t *testing.T) {
	items := []Timespan{span(0, 2), span(1, 3)}

	results := Noop{}.Arrange(items)

	require.Len(t, results, 2)
	for i, r := range results {
		assert.Equal(t, items[i], r.Item)
		assert.Equal(t, 1, r.Column)
		assert.Equal(t, 1, r.Columns)
	}
}

func TestDefault_MatchesGenericArrange(t *testing.T) {
	items := []Timespan{span(0, 2), span(1, 3), span(5, 6)}

	results := Default{}.Arrange(items)

	require.Len(t, results, 3)
	assert.Equal(t, 2, results[1].Column)
	assert.Equal(t, 2, results[1].Columns)
	assert.Equal(t, 1, results[2].Columns)
}
