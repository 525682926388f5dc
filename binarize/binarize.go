// Package binarize converts categorical label tables into 0/1 indicator
// matrices with entity rows and category columns.
//
// Three input encodings are supported:
//
//   - pseudo_tab: one column per entity, headed by the entity name, listing
//     that entity's categories; columns may have different lengths.
//   - long: one (entity, label) pair per row.
//   - binary: an indicator matrix that is already binarized.
package binarize

import (
	"errors"
	"fmt"

	"github.com/nozzle/jaccard/table"
)

// Format names an input encoding.
type Format string

const (
	PseudoTabular Format = "pseudo_tab"
	Long          Format = "long"
	Binary        Format = "binary"
)

var (
	// ErrUnsupportedFormat is returned for an unknown format specifier.
	ErrUnsupportedFormat = errors.New("binarize: unsupported format")
	// ErrNoEntities is returned when the input describes no entities.
	ErrNoEntities = errors.New("binarize: no entities in input")
	// ErrDuplicateEntity is returned when an entity name appears twice
	// where names must be unique.
	ErrDuplicateEntity = errors.New("binarize: duplicate entity")
)

// Formats lists the supported formats.
var Formats = []Format{PseudoTabular, Long, Binary}

// ParseFormat validates a format specifier.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FromTable binarizes a table read in the given format.
// An unsupported format returns a nil matrix and ErrUnsupportedFormat.
func FromTable(t *table.Table, format Format) (*Matrix, error) {
	switch format {
	case PseudoTabular:
		return Tabular(t)
	case Long:
		return LongPairs(t)
	case Binary:
		return Indicator(t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Read loads a CSV file and binarizes it.
func Read(path string, format Format) (*Matrix, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	t, err := table.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return FromTable(t, format)
}
