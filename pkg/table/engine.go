// Package table derives sorted and filtered views over an immutable row set.
//
// An Engine keeps a fixed base dataset plus at most one sort key and one
// filter term. Derive always recomputes from the base rows: it sorts first
// (stable, ties keep insertion order) and then keeps the rows whose
// searchable fields contain the filter term, ignoring case.
package table

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the order of the active sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// MarshalText encodes the direction as "asc" or "desc".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts "asc" or "desc".
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "asc":
		*d = Ascending
	case "desc":
		*d = Descending
	default:
		return fmt.Errorf("table: unknown direction %q", text)
	}
	return nil
}

// SortKey is the active (field, direction) pair.
type SortKey struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// ColumnInfo describes a column for rendering headers and sort indicators.
type ColumnInfo struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Searchable bool   `json:"searchable"`
	Sorted     bool   `json:"sorted"`
	Direction  string `json:"direction,omitempty"`
}

// Option customizes an Engine.
type Option func(*config)

type config struct {
	locale language.Tag
}

// WithLocale sets the collation locale for text columns (default pt-BR).
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.locale = tag
	}
}

// Engine is not safe for concurrent use; callers serialize access.
type Engine[T any] struct {
	schema   *Schema[T]
	rows     []T
	sortKey  *SortKey
	filter   string
	collator *collate.Collator
	folder   cases.Caser
}

// NewEngine copies rows so later changes to the caller's slice are not observed.
func NewEngine[T any](schema *Schema[T], rows []T, opts ...Option) *Engine[T] {
	cfg := config{locale: language.BrazilianPortuguese}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine[T]{
		schema:   schema,
		rows:     append([]T(nil), rows...),
		collator: collate.New(cfg.locale),
		folder:   cases.Fold(),
	}
}

// SetSort activates field. The active field flips direction; any other
// field becomes active ascending. Unknown fields leave state untouched.
func (e *Engine[T]) SetSort(field string) error {
	col, ok := e.schema.Lookup(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	if e.sortKey != nil && normalizeKey(e.sortKey.Field) == normalizeKey(col.Key) {
		e.sortKey.Direction = e.sortKey.Direction.Toggle()
		return nil
	}
	e.sortKey = &SortKey{Field: col.Key, Direction: Ascending}
	return nil
}

// ClearSort restores insertion order.
func (e *Engine[T]) ClearSort() {
	e.sortKey = nil
}

// SetFilter replaces the filter term; "" disables filtering.
func (e *Engine[T]) SetFilter(term string) {
	e.filter = term
}

// Filter returns the active filter term.
func (e *Engine[T]) Filter() string {
	return e.filter
}

// SortKey returns the active sort key, if any.
func (e *Engine[T]) SortKey() (SortKey, bool) {
	if e.sortKey == nil {
		return SortKey{}, false
	}
	return *e.sortKey, true
}

// Len is the size of the base dataset.
func (e *Engine[T]) Len() int {
	return len(e.rows)
}

// Derive returns the current view. It never returns nil.
func (e *Engine[T]) Derive() []T {
	out := make([]T, len(e.rows))
	copy(out, e.rows)
	if len(out) == 0 {
		return out
	}
	if e.sortKey != nil {
		col, _ := e.schema.Lookup(e.sortKey.Field)
		cmp := e.comparator(col)
		desc := e.sortKey.Direction == Descending
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return cmp(out[j], out[i]) < 0
			}
			return cmp(out[i], out[j]) < 0
		})
	}
	if e.filter == "" {
		return out
	}
	needle := e.folder.String(e.filter)
	kept := out[:0]
	for _, row := range out {
		if e.matches(row, needle) {
			kept = append(kept, row)
		}
	}
	return kept
}

// Columns describes the schema with the current sort state applied.
func (e *Engine[T]) Columns() []ColumnInfo {
	cols := e.schema.Columns()
	out := make([]ColumnInfo, 0, len(cols))
	for _, col := range cols {
		info := ColumnInfo{
			Key:        col.Key,
			Label:      col.Label,
			Kind:       col.Kind.String(),
			Searchable: col.Searchable,
		}
		if e.sortKey != nil && normalizeKey(e.sortKey.Field) == normalizeKey(col.Key) {
			info.Sorted = true
			info.Direction = e.sortKey.Direction.String()
		}
		out = append(out, info)
	}
	return out
}

func (e *Engine[T]) comparator(col Column[T]) func(a, b T) int {
	if col.Kind == Number {
		return func(a, b T) int {
			x, y := col.Number(a), col.Number(b)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	return func(a, b T) int {
		return e.collator.CompareString(col.Text(a), col.Text(b))
	}
}

func (e *Engine[T]) matches(row T, needle string) bool {
	for _, col := range e.schema.columns {
		if !col.Searchable || col.Text == nil {
			continue
		}
		if strings.Contains(e.folder.String(col.Text(row)), needle) {
			return true
		}
	}
	return false
}
