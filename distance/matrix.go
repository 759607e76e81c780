package distance

import (
	"fmt"

	"github.com/katalvlaran/coflow/core"
)

// Matrix is the symmetric N×N dissimilarity matrix over sorted StreamIDs,
// stored row-major in a flat slice. Row/column i always refers to IDs()[i];
// the order is fixed once at build time and reused by every consumer.
//
// Off-diagonal entries lie in [0,1]; the diagonal stays at zero and is
// never read by the clusterers. Matrices are immutable after Build.
type Matrix struct {
	ids        []core.StreamID
	n          int
	data       []float64 // n*n, row-major
	maxOverlap float64
}

// newMatrix allocates an all-zero n×n matrix over the given sorted ids.
func newMatrix(ids []core.StreamID) *Matrix {
	n := len(ids)

	return &Matrix{ids: ids, n: n, data: make([]float64, n*n)}
}

// setPair mirrors v into (i,j) and (j,i). Internal: indices are trusted.
func (m *Matrix) setPair(i, j int, v float64) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// Size returns N, the number of streams.
func (m *Matrix) Size() int { return m.n }

// IDs returns the sorted StreamID index as a fresh copy, so callers
// cannot disturb the canonical order.
func (m *Matrix) IDs() []core.StreamID {
	out := make([]core.StreamID, m.n)
	copy(out, m.ids)

	return out
}

// MaxOverlap returns the maximum raw overlap observed during the build;
// it was used for normalization and is retained for reporting only.
func (m *Matrix) MaxOverlap() float64 { return m.maxOverlap }

// At returns the dissimilarity between streams i and j with bounds
// checking. Out-of-range indices → ErrIndexOutOfBounds.
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("%w: (%d,%d) in %d×%d", ErrIndexOutOfBounds, i, j, m.n, m.n)
	}

	return m.data[i*m.n+j], nil
}

// Func returns the matrix as an unchecked pairwise distance function —
// the shape the density clusterers consume. The closure reads the flat
// slice directly; indices must be valid.
func (m *Matrix) Func() func(i, j int) float64 {
	n, data := m.n, m.data

	return func(i, j int) float64 { return data[i*n+j] }
}

// validate confirms the output guarantee after a build: every
// off-diagonal entry finite and inside [0,1]. Symmetry holds by
// construction (setPair mirrors), so only the range is checked.
func (m *Matrix) validate() error {
	var v float64
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if i == j {
				continue
			}
			v = m.data[i*m.n+j]
			if v < 0 || v > 1 || v != v { // v != v catches NaN
				return fmt.Errorf("%w: got %v at (%d,%d)", ErrTransformRange, v, i, j)
			}
		}
	}

	return nil
}
