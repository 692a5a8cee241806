package table

import (
	"errors"
	"fmt"

	"github.com/ettle/strcase"
)

var (
	// ErrInvalidField is returned when a sort references a column absent from the schema.
	ErrInvalidField = errors.New("table: invalid field")
	errEmptyKey     = errors.New("table: column key is required")
)

// Kind selects how a column compares.
type Kind int

const (
	// Text columns compare with locale-aware collation.
	Text Kind = iota
	// Number columns compare by value.
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "string"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Column describes one field of a row type.
type Column[T any] struct {
	Key        string
	Label      string
	Kind       Kind
	Text       func(T) string
	Number     func(T) float64
	Searchable bool
}

// Schema is an ordered set of columns addressed by normalized key.
type Schema[T any] struct {
	columns []Column[T]
	index   map[string]int
}

// NewSchema validates the columns and indexes them by snake_case key, so
// "salesCycle", "SalesCycle" and "sales_cycle" address the same column.
func NewSchema[T any](columns ...Column[T]) (*Schema[T], error) {
	s := &Schema[T]{
		columns: make([]Column[T], 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col.Key == "" {
			return nil, fmt.Errorf("%w (index %d)", errEmptyKey, i)
		}
		key := normalizeKey(col.Key)
		if _, exists := s.index[key]; exists {
			return nil, fmt.Errorf("table: duplicate column %q", col.Key)
		}
		switch col.Kind {
		case Text:
			if col.Text == nil {
				return nil, fmt.Errorf("table: text column %q has no accessor", col.Key)
			}
		case Number:
			if col.Number == nil {
				return nil, fmt.Errorf("table: number column %q has no accessor", col.Key)
			}
			if col.Searchable && col.Text == nil {
				return nil, fmt.Errorf("table: searchable column %q needs a text accessor", col.Key)
			}
		default:
			return nil, fmt.Errorf("table: column %q has unknown kind %d", col.Key, col.Kind)
		}
		if col.Label == "" {
			col.Label = col.Key
		}
		s.index[key] = len(s.columns)
		s.columns = append(s.columns, col)
	}
	return s, nil
}

// Lookup returns the column for a key in any casing convention.
func (s *Schema[T]) Lookup(key string) (Column[T], bool) {
	if s == nil {
		return Column[T]{}, false
	}
	idx, ok := s.index[normalizeKey(key)]
	if !ok {
		return Column[T]{}, false
	}
	return s.columns[idx], true
}

// Columns returns the columns in declaration order.
func (s *Schema[T]) Columns() []Column[T] {
	if s == nil {
		return nil
	}
	return append([]Column[T](nil), s.columns...)
}

func normalizeKey(key string) string {
	return strcase.ToSnake(key)
}
