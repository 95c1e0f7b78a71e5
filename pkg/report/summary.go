// Package report formats short text previews of pipeline matrices.
package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// FirstValues formats the first n entries of column 0 of m, e.g. "-5.00, 5.00"
func FirstValues(m mat.Matrix, n int) string {
	rows, cols := m.Dims()
	if cols == 0 {
		return ""
	}
	n = min(n, rows)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%.2f", m.At(i, 0))
	}
	return strings.Join(parts, ", ")
}

// Corner formats at most the top-left 3x3 block of m, e.g. "[50.00]"
// or "[1.00, 0.00]; [0.00, 1.00]"
func Corner(m mat.Matrix) string {
	rows, cols := m.Dims()
	rows, cols = min(rows, 3), min(cols, 3)

	summary := make([]string, rows)
	for i := 0; i < rows; i++ {
		cells := make([]string, cols)
		for j := 0; j < cols; j++ {
			cells[j] = fmt.Sprintf("%.2f", m.At(i, j))
		}
		summary[i] = "[" + strings.Join(cells, ", ") + "]"
	}
	return strings.Join(summary, "; ")
}

// Vector formats a slice of floats with two decimals
func Vector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return strings.Join(parts, ", ")
}
