// Package pca implements the numeric core of the image PCA pipeline:
// centering, sample covariance, symmetric eigendecomposition and projection.
//
// Every operation returns fresh matrices and never mutates its inputs. Results
// are deterministic: summation order is fixed, so runs with different numCores
// values produce bit-identical output.
package pca

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"imagepca/internal/models"
	"imagepca/internal/workers"
)

// Eigen holds an eigendecomposition of a covariance matrix.
// Column j of Vectors is the unit eigenvector for Values[j].
type Eigen struct {
	Values  []float64
	Vectors *mat.Dense
}

// Center subtracts each column's mean from the observation matrix and returns
// the centered copy together with the mean vector.
func Center(m *mat.Dense) (*mat.Dense, []float64, error) {
	if m == nil || m.IsEmpty() {
		return nil, nil, fmt.Errorf("empty observation matrix: %w", models.ErrInvalidInput)
	}
	if err := checkFinite(m); err != nil {
		return nil, nil, fmt.Errorf("observation matrix: %w", err)
	}

	rows, cols := m.Dims()
	mean := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean[j] = stat.Mean(col, nil)
	}

	centered := mat.NewDense(rows, cols, nil)
	centered.Apply(func(i, j int, v float64) float64 {
		return v - mean[j]
	}, m)

	return centered, mean, nil
}

// Covariance computes the Bessel-corrected sample covariance of a centered
// matrix: entry (i, j) is the sum over rows of centered[k,i]*centered[k,j]
// divided by rows-1. Column pairs are spread over numCores goroutines; each
// pair is still summed sequentially in row order.
func Covariance(centered *mat.Dense, numCores int) (*mat.SymDense, error) {
	if centered == nil || centered.IsEmpty() {
		return nil, fmt.Errorf("empty centered matrix: %w", models.ErrInvalidInput)
	}
	rows, cols := centered.Dims()
	if rows < 2 {
		return nil, fmt.Errorf("covariance needs at least 2 samples, got %d: %w", rows, models.ErrInvalidInput)
	}

	columns := make([][]float64, cols)
	for j := range columns {
		columns[j] = mat.Col(nil, j, centered)
	}

	type pair struct{ i, j int }
	pairs := make([]pair, 0, cols*(cols+1)/2)
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	values := make([]float64, len(pairs))
	denom := float64(rows - 1)
	err := workers.ForRows(len(pairs), numCores, func(start, end int) error {
		for p := start; p < end; p++ {
			values[p] = floats.Dot(columns[pairs[p].i], columns[pairs[p].j]) / denom
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cov := mat.NewSymDense(cols, nil)
	for p, ij := range pairs {
		cov.SetSym(ij.i, ij.j, values[p])
	}
	if err := checkFinite(cov); err != nil {
		return nil, fmt.Errorf("covariance matrix: %w", err)
	}
	return cov, nil
}

// Eigendecompose factorizes a symmetric covariance matrix. The eigenvectors
// form an orthonormal basis. With models.EigenOrderSolver the pairs keep the
// solver's order (ascending for gonum's EigenSym); models.EigenOrderDescending
// sorts them by decreasing eigenvalue.
func Eigendecompose(cov mat.Symmetric, order models.EigenOrder) (*Eigen, error) {
	if cov == nil || cov.SymmetricDim() == 0 {
		return nil, fmt.Errorf("empty covariance matrix: %w", models.ErrInvalidInput)
	}
	if err := checkFinite(cov); err != nil {
		return nil, fmt.Errorf("covariance matrix: %w", err)
	}

	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return nil, fmt.Errorf("symmetric eigensolver did not converge: %w", models.ErrNumericalFailure)
	}

	values := es.Values(nil)
	vectors := mat.NewDense(len(values), len(values), nil)
	es.VectorsTo(vectors)

	if order == models.EigenOrderDescending {
		values, vectors = sortDescending(values, vectors)
	}

	if err := checkFinite(vectors); err != nil {
		return nil, fmt.Errorf("eigenvectors: %w", err)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("eigenvalue %v: %w", v, models.ErrNumericalFailure)
		}
	}

	return &Eigen{Values: values, Vectors: vectors}, nil
}

// Project multiplies the centered matrix (pixels x channels) by the
// eigenvector matrix (channels x channels). Row ranges are spread over
// numCores goroutines.
func Project(centered *mat.Dense, vectors mat.Matrix, numCores int) (*mat.Dense, error) {
	if centered == nil || centered.IsEmpty() || vectors == nil {
		return nil, fmt.Errorf("empty projection operand: %w", models.ErrInvalidInput)
	}
	rows, cols := centered.Dims()
	vr, vc := vectors.Dims()
	if cols != vr {
		return nil, fmt.Errorf("centered matrix is %dx%d but eigenvectors are %dx%d: %w",
			rows, cols, vr, vc, models.ErrDimensionMismatch)
	}

	out := mat.NewDense(rows, vc, nil)
	err := workers.ForRows(rows, numCores, func(start, end int) error {
		dst := out.Slice(start, end, 0, vc).(*mat.Dense)
		dst.Mul(centered.Slice(start, end, 0, cols), vectors)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := checkFinite(out); err != nil {
		return nil, fmt.Errorf("transformed matrix: %w", err)
	}
	return out, nil
}

// ExplainedVariance returns each eigenvalue's share of the total variance.
// A zero total (flat image) yields all zeros.
func ExplainedVariance(values []float64) []float64 {
	ratios := make([]float64, len(values))
	total := floats.Sum(values)
	if total == 0 {
		return ratios
	}
	floats.ScaleTo(ratios, 1/total, values)
	return ratios
}

// sortDescending reorders eigenpairs so that values decrease. Ties keep the
// solver's relative order.
func sortDescending(values []float64, vectors *mat.Dense) ([]float64, *mat.Dense) {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	sorted := make([]float64, n)
	out := mat.NewDense(n, n, nil)
	col := make([]float64, n)
	for dst, src := range idx {
		sorted[dst] = values[src]
		out.SetCol(dst, mat.Col(col, src, vectors))
	}
	return sorted, out
}

func checkFinite(m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("non-finite value %v at (%d,%d): %w", v, i, j, models.ErrNumericalFailure)
			}
		}
	}
	return nil
}
