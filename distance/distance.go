// Package distance provides binary distance metrics between membership vectors.
package distance

import "sort"

// Func is a distance function between two vectors.
type Func func(x, y []float64) float64

// Registry maps metric names to their implementations.
var Registry = map[string]Func{
	"jaccard":        Jaccard,
	"tanimoto":       Jaccard,
	"dice":           Dice,
	"hamming":        Hamming,
	"matching":       Matching,
	"kulsinski":      Kulsinski,
	"rogerstanimoto": RogersTanimoto,
	"russellrao":     RussellRao,
	"sokalmichener":  SokalMichener,
	"sokalsneath":    SokalSneath,
	"yule":           Yule,
}

// Get returns the distance function for the given metric name.
func Get(name string) (Func, bool) {
	f, ok := Registry[name]
	return f, ok
}

// Names returns the registered metric names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
