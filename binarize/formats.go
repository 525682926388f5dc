package binarize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nozzle/jaccard/table"
	"gonum.org/v1/gonum/mat"
)

// Tabular binarizes pseudo-tabular input: the header holds entity names and
// each column lists that entity's categories. Missing cells are dropped.
func Tabular(t *table.Table) (*Matrix, error) {
	if t.NumCols() == 0 {
		return nil, ErrNoEntities
	}

	members := make(map[string][]string, t.NumCols())
	for j, entity := range t.Header {
		if _, dup := members[entity]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntity, entity)
		}
		cats := []string{}
		for _, cell := range t.Column(j) {
			if !table.IsNA(cell) {
				cats = append(cats, cell)
			}
		}
		members[entity] = cats
	}

	return New(append([]string(nil), t.Header...), members)
}

// LongPairs binarizes long-format input whose first two columns are
// (entity, label). Extra columns are ignored and repeated pairs count once.
// Entities come out sorted.
func LongPairs(t *table.Table) (*Matrix, error) {
	if t.NumCols() < 2 {
		return nil, fmt.Errorf("binarize: long format needs 2 columns, got %d", t.NumCols())
	}

	members := make(map[string][]string)
	for _, row := range t.Rows {
		entity, label := row[0], row[1]
		if table.IsNA(entity) || table.IsNA(label) {
			continue
		}
		members[entity] = append(members[entity], label)
	}

	entities := make([]string, 0, len(members))
	for e := range members {
		entities = append(entities, e)
	}
	sort.Strings(entities)

	return New(entities, members)
}

// Indicator reads a pre-binarized table. A leading Entity column, or any
// first column holding non-numeric values, supplies entity labels; without
// one, entities are named e_0, e_1, ... Non-zero values mark membership.
func Indicator(t *table.Table) (*Matrix, error) {
	if t.NumRows() == 0 {
		return nil, ErrNoEntities
	}

	first := 0
	if t.NumCols() > 0 && hasLabelColumn(t) {
		first = 1
	}

	entities := make([]string, t.NumRows())
	seen := make(map[string]bool, t.NumRows())
	for i, row := range t.Rows {
		if first == 0 {
			entities[i] = "e_" + strconv.Itoa(i)
			continue
		}
		if seen[row[0]] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntity, row[0])
		}
		seen[row[0]] = true
		entities[i] = row[0]
	}

	m := &Matrix{
		Entities:   entities,
		Categories: append([]string(nil), t.Header[first:]...),
	}
	if m.NumCategories() == 0 {
		return m, nil
	}

	m.Values = mat.NewDense(len(entities), m.NumCategories(), nil)
	for i, row := range t.Rows {
		for j, cell := range row[first:] {
			if table.IsNA(cell) {
				return nil, fmt.Errorf("binarize: row %d, col %d: missing value", i+1, j+first)
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("binarize: row %d, col %d: %w", i+1, j+first, err)
			}
			if v != 0 {
				m.Values.Set(i, j, 1)
			}
		}
	}

	return m, nil
}

func hasLabelColumn(t *table.Table) bool {
	if strings.EqualFold(t.Header[0], EntityColumn) {
		return true
	}
	for _, cell := range t.Column(0) {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return true
		}
	}
	return false
}
