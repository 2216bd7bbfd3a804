package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mlcompute/matrix"
)

func TestOptions_Defaults(t *testing.T) {
	o := matrix.NewOptions()
	require.Equal(t, matrix.DefaultSingularEpsilon, o.SingularEpsilon())
	require.Equal(t, matrix.DefaultStrictShape, o.StrictShape())
	require.Equal(t, matrix.DefaultGeneralInverse, o.GeneralInverse())
}

func TestOptions_AppliedInOrder(t *testing.T) {
	o := matrix.NewOptions(
		matrix.WithStrictShape(),
		matrix.WithGeneralInverse(),
		matrix.WithSingularEpsilon(1e-3),
		nil, // skipped
		matrix.WithPermissiveShape(),
	)
	require.False(t, o.StrictShape())
	require.True(t, o.GeneralInverse())
	require.Equal(t, 1e-3, o.SingularEpsilon())

	e := matrix.NewEngine(matrix.WithStrictShape())
	require.True(t, e.Options().StrictShape())
}

func TestWithSingularEpsilon_PanicsOnNonsense(t *testing.T) {
	for _, eps := range []float64{-1, math.NaN(), math.Inf(1)} {
		require.Panics(t, func() { matrix.WithSingularEpsilon(eps) }, "eps=%v", eps)
	}
	require.NotPanics(t, func() { matrix.WithSingularEpsilon(0) })
}

func TestWithMaxElements(t *testing.T) {
	require.Equal(t, matrix.DefaultMaxElements, matrix.NewOptions().MaxElements())
	require.Equal(t, 10, matrix.NewOptions(matrix.WithMaxElements(10)).MaxElements())
	require.Panics(t, func() { matrix.WithMaxElements(0) })
}
