// SPDX-License-Identifier: MIT
package pagerank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fastrank/sparse"
)

func twoCycle(t *testing.T) *problem {
	t.Helper()
	b, err := sparse.NewBuilder(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.Add(0, 1, 1))
	require.NoError(t, b.Add(1, 0, 2))
	pb, err := setup(b.BuildCSR(), nil)
	require.NoError(t, err)
	require.NotNil(t, pb)

	return pb
}

func TestSystemMatrix_Assembles(t *testing.T) {
	pb := twoCycle(t)
	m, err := systemMatrix(pb)
	require.NoError(t, err)

	p := DefaultDamping
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(1, 1))
	assert.InDelta(t, -p, m.At(1, 0), 1e-15)
	assert.InDelta(t, -p, m.At(0, 1), 1e-15)
}

func TestSystemMatrix_ReportsInconsistentProblem(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr []error
	}{
		{"operator wider than n", 1, []error{ErrSingularSystem, sparse.ErrOutOfRange}},
		{"negative n", -1, []error{ErrInvalidShape, sparse.ErrBadShape}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := twoCycle(t)
			pb.n = tt.n
			m, err := systemMatrix(pb)
			assert.Nil(t, m)
			for _, want := range tt.wantErr {
				require.ErrorIs(t, err, want)
			}
		})
	}
}
