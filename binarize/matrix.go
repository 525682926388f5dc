package binarize

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// EntityColumn is the header of the entity label column in CSV output.
const EntityColumn = "Entity"

// Matrix is an entities x categories indicator matrix.
type Matrix struct {
	Entities   []string
	Categories []string
	// Values holds 1 where entity i has category j and 0 otherwise.
	// It is nil when there are no categories.
	Values *mat.Dense
}

// New builds a matrix from per-entity category sets. Entities keep the
// given order and categories are sorted.
func New(entities []string, members map[string][]string) (*Matrix, error) {
	if len(entities) == 0 {
		return nil, ErrNoEntities
	}

	seen := make(map[string]bool)
	for _, e := range entities {
		for _, c := range members[e] {
			seen[c] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	col := make(map[string]int, len(categories))
	for j, c := range categories {
		col[c] = j
	}

	m := &Matrix{
		Entities:   entities,
		Categories: categories,
	}
	if len(categories) == 0 {
		return m, nil
	}

	m.Values = mat.NewDense(len(entities), len(categories), nil)
	for i, e := range entities {
		for _, c := range members[e] {
			m.Values.Set(i, col[c], 1)
		}
	}
	return m, nil
}

// NumEntities returns the number of rows.
func (m *Matrix) NumEntities() int {
	return len(m.Entities)
}

// NumCategories returns the number of columns.
func (m *Matrix) NumCategories() int {
	return len(m.Categories)
}

// Row returns the indicator vector of entity i. The slice aliases the
// matrix storage.
func (m *Matrix) Row(i int) []float64 {
	if m.Values == nil {
		return []float64{}
	}
	return m.Values.RawRowView(i)
}

// Memberships returns each entity's categories in sorted order.
func (m *Matrix) Memberships() map[string][]string {
	out := make(map[string][]string, len(m.Entities))
	for i, e := range m.Entities {
		cats := []string{}
		for j, v := range m.Row(i) {
			if v != 0 {
				cats = append(cats, m.Categories[j])
			}
		}
		out[e] = cats
	}
	return out
}

// WriteCSV writes the matrix as binary-format CSV with an Entity column.
func (m *Matrix) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := append([]string{EntityColumn}, m.Categories...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, e := range m.Entities {
		record := make([]string, 0, len(header))
		record = append(record, e)
		for _, v := range m.Row(i) {
			record = append(record, fmt.Sprintf("%d", int(v)))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
