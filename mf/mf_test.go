package mf_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veldtkamp/inferno/factor"
	"github.com/veldtkamp/inferno/factorgraph"
	"github.com/veldtkamp/inferno/mf"
	"github.com/veldtkamp/inferno/props"
	"github.com/veldtkamp/inferno/varset"
)

func config(tol float64, maxiter uint) props.Set {
	return props.FromMap(map[string]any{
		"tol":     tol,
		"maxiter": maxiter,
		"verbose": 0,
	})
}

func mustFactor(t *testing.T, vs varset.VarSet, xs []float64) factor.Factor {
	t.Helper()
	f, err := factor.NewFromSlice(vs, xs)
	require.NoError(t, err)
	return f
}

func TestConfigErrors(t *testing.T) {
	x := varset.NewVar(0, 2)
	g, err := factorgraph.New([]factor.Factor{mustFactor(t, varset.New(x), []float64{1, 1})})
	require.NoError(t, err)

	missing := props.New()
	missing.Put("tol", "1e-9")
	_, err = mf.New(g, missing)
	require.ErrorIs(t, err, props.ErrMissingProperty)

	_, err = mf.New(g, config(0, 10))
	require.ErrorIs(t, err, mf.ErrBadTolerance)
}

// TestSingleSiteExact checks that mean field recovers the exact marginal of
// an independent model: one unary factor per variable.
func TestSingleSiteExact(t *testing.T) {
	x := varset.NewVar(0, 2)
	y := varset.NewVar(1, 3)
	fx := mustFactor(t, varset.New(x), []float64{0.3, 0.7})
	fy := mustFactor(t, varset.New(y), []float64{1, 2, 1})
	g, err := factorgraph.New([]factor.Factor{fx, fy})
	require.NoError(t, err)

	eng, err := mf.New(g, config(1e-12, 100))
	require.NoError(t, err)
	md, err := eng.Run()
	require.NoError(t, err)
	require.LessOrEqual(t, md, 1e-12)

	bx, err := eng.BeliefOf(x)
	require.NoError(t, err)
	require.InDelta(t, 0.3, bx.At(0), 1e-9)
	require.InDelta(t, 0.7, bx.At(1), 1e-9)

	by, err := eng.BeliefOf(y)
	require.NoError(t, err)
	require.InDelta(t, 0.25, by.At(0), 1e-9)
	require.InDelta(t, 0.5, by.At(1), 1e-9)

	// LogZ is exact on a fully independent model:
	// log(0.3+0.7) + log(1+2+1)
	lz, err := eng.LogZ()
	require.NoError(t, err)
	require.InDelta(t, math.Log(4), lz, 1e-9)
}

// TestPairwiseLowerBound checks the variational inequality: the mean-field
// LogZ never exceeds the true log partition function.
func TestPairwiseLowerBound(t *testing.T) {
	x := varset.NewVar(0, 2)
	y := varset.NewVar(1, 2)
	coupling := mustFactor(t, varset.New(x, y), []float64{3, 1, 1, 3})
	bias := mustFactor(t, varset.New(x), []float64{2, 1})
	g, err := factorgraph.New([]factor.Factor{coupling, bias})
	require.NoError(t, err)

	eng, err := mf.New(g, config(1e-10, 1000))
	require.NoError(t, err)
	_, err = eng.Run()
	require.NoError(t, err)

	lz, err := eng.LogZ()
	require.NoError(t, err)
	trueZ := coupling.Times(bias).TotalSum()
	require.LessOrEqual(t, lz, math.Log(trueZ)+1e-9)
	require.False(t, math.IsNaN(lz))
}

func TestBeliefSurface(t *testing.T) {
	x := varset.NewVar(0, 2)
	y := varset.NewVar(1, 2)
	g, err := factorgraph.New([]factor.Factor{
		mustFactor(t, varset.New(x, y), []float64{1, 2, 2, 1}),
	})
	require.NoError(t, err)

	eng, err := mf.New(g, config(1e-9, 100))
	require.NoError(t, err)
	_, err = eng.Run()
	require.NoError(t, err)

	_, err = eng.Belief(varset.New(x, y))
	require.ErrorIs(t, err, mf.ErrNotSingleton)

	_, err = eng.BeliefOf(varset.NewVar(9, 2))
	require.ErrorIs(t, err, mf.ErrVarNotFound)

	single, err := eng.Belief(varset.New(y))
	require.NoError(t, err)
	require.InDelta(t, 1.0, single.TotalSum(), 1e-12)

	all, err := eng.Beliefs()
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.Contains(t, eng.Identify(), "MF[")
}

func TestInitResets(t *testing.T) {
	x := varset.NewVar(0, 2)
	g, err := factorgraph.New([]factor.Factor{mustFactor(t, varset.New(x), []float64{9, 1})})
	require.NoError(t, err)

	eng, err := mf.New(g, config(1e-10, 100))
	require.NoError(t, err)
	_, err = eng.Run()
	require.NoError(t, err)

	b, err := eng.BeliefOf(x)
	require.NoError(t, err)
	require.InDelta(t, 0.9, b.At(0), 1e-9)

	eng.Init()
	b, err = eng.BeliefOf(x)
	require.NoError(t, err)
	require.InDelta(t, 0.5, b.At(0), 1e-12)
}
