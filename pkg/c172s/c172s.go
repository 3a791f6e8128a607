package c172s

import "fmt"

// flatten concatenates handbook rows into row-major table values.
func flatten(rows [][]float64) []float64 {
	var out []float64
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

// mustBuild panics if compiled-in handbook data fails validation.
func mustBuild[T any](build func() (T, error)) T {
	v, err := build()
	if err != nil {
		panic(fmt.Sprintf("c172s: invalid built-in table: %v", err))
	}
	return v
}
