package arranger

import (
	"slices"
	"sort"
	"time"
)

// Timespan is anything with a start and an end instant. End is not required
// to be after start.
type Timespan interface {
	StartTime() time.Time
	EndTime() time.Time
}

// Span is the plain Timespan implementation.
type Span struct {
	From time.Time
	To   time.Time
}

func (s Span) StartTime() time.Time { return s.From }
func (s Span) EndTime() time.Time   { return s.To }

// Result places a single item in a 1-based column out of Columns columns.
type Result[T Timespan] struct {
	Item    T
	Column  int
	Columns int
}

// Arranger assigns columns to timespans so that overlapping ones do not collide.
type Arranger interface {
	Arrange(items []Timespan) []Result[Timespan]
}

// Default is the overlap-aware arranger.
type Default struct{}

func (Default) Arrange(items []Timespan) []Result[Timespan] {
	return Arrange(items)
}

// Noop puts every item in a single full-width column.
type Noop struct{}

func (Noop) Arrange(items []Timespan) []Result[Timespan] {
	results := make([]Result[Timespan], 0, len(items))
	for _, item := range items {
		results = append(results, Result[Timespan]{Item: item, Column: 1, Columns: 1})
	}
	return results
}

// Arrange splits items into groups of transitively overlapping timespans and
// assigns each item the lowest free column within its group. Every item of a
// group reports the same Columns, the highest column used in that group.
// Results are ordered by group, then by start; each input item appears once.
func Arrange[T Timespan](items []T) []Result[T] {
	groups := groupOverlapping(items)

	results := make([]Result[T], 0, len(items))
	for _, group := range groups {
		results = append(results, arrangeIntoColumns(group)...)
	}
	return results
}

func sortedByStart[T Timespan](items []T) []T {
	sorted := slices.Clone(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime().Before(sorted[j].StartTime())
	})
	return sorted
}

func groupOverlapping[T Timespan](items []T) [][]T {
	var groups [][]T
	var lastEnd time.Time

	for i, item := range sortedByStart(items) {
		if i == 0 || !item.StartTime().Before(lastEnd) {
			groups = append(groups, []T{item})
		} else {
			groups[len(groups)-1] = append(groups[len(groups)-1], item)
		}

		if i == 0 || item.EndTime().After(lastEnd) {
			lastEnd = item.EndTime()
		}
	}

	return groups
}

type activeSpan struct {
	end    time.Time
	column int
}

func arrangeIntoColumns[T Timespan](group []T) []Result[T] {
	if len(group) == 0 {
		return []Result[T]{}
	}

	var active []activeSpan
	results := make([]Result[T], 0, len(group))
	maxColumn := 0

	for _, item := range sortedByStart(group) {
		start := item.StartTime()
		active = slices.DeleteFunc(active, func(a activeSpan) bool {
			return !a.end.After(start)
		})

		column := firstUnused(active)
		results = append(results, Result[T]{Item: item, Column: column})
		maxColumn = max(maxColumn, column)

		active = append(active, activeSpan{end: item.EndTime(), column: column})
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].end.Before(active[j].end)
		})
	}

	for i := range results {
		results[i].Columns = maxColumn
	}
	return results
}

// firstUnused returns the lowest column number >= 1 not held by an active span.
func firstUnused(active []activeSpan) int {
	columns := make([]int, 0, len(active))
	for _, a := range active {
		columns = append(columns, a.column)
	}
	slices.Sort(columns)

	for i, column := range columns {
		if column != i+1 {
			return i + 1
		}
	}
	return len(columns) + 1
}
