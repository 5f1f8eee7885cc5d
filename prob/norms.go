package prob

import (
	"errors"
	"math"
)

// NormType selects the norm used by Normalize.
type NormType int

const (
	// NormProb divides by the total sum, producing a probability vector.
	// Fails when the sum is zero.
	NormProb NormType = iota

	// NormLInf divides by the largest absolute entry.
	// Fails when every entry is zero.
	NormLInf
)

// DistType selects the distance measure computed by Distance.
type DistType int

const (
	// DistL1 is the sum of absolute differences.
	DistL1 DistType = iota

	// DistLInf is the largest absolute difference.
	DistLInf

	// DistTV is the total-variation distance, ½·L1.
	DistTV

	// DistKL is the Kullback-Leibler divergence Σ a·log(a/b), with
	// 0·log 0 = 0. It diverges when b = 0 while a > 0.
	DistKL

	// DistHellinger is the squared Hellinger distance ½·Σ(√a−√b)².
	DistHellinger
)

// ErrUnknownKind is returned for a NormType or DistType outside the
// enumerated values.
var ErrUnknownKind = errors.New("prob: unknown norm or distance kind")

// Normalize rescales v in place under the given norm and returns the
// divisor that was applied. Returns ErrNonNormalizable when the divisor is
// zero, leaving v untouched.
func (v Vector) Normalize(kind NormType) (float64, error) {
	var z float64
	switch kind {
	case NormProb:
		z = v.TotalSum()
	case NormLInf:
		z = v.MaxAbs()
	default:
		return 0, ErrUnknownKind
	}
	if z == 0 {
		return 0, ErrNonNormalizable
	}
	v.ScaleAssign(1 / z)
	return z, nil
}

// Normalized returns a normalized copy of v under the given norm.
func (v Vector) Normalized(kind NormType) (Vector, error) {
	out := v.Clone()
	if _, err := out.Normalize(kind); err != nil {
		return nil, err
	}
	return out, nil
}

// Distance computes the distance between a and b under the given measure.
// Returns ErrLengthMismatch on shape clash.
func Distance(a, b Vector, kind DistType) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	switch kind {
	case DistL1:
		d := 0.0
		for i := range a {
			d += math.Abs(a[i] - b[i])
		}
		return d, nil
	case DistLInf:
		d := 0.0
		for i := range a {
			if x := math.Abs(a[i] - b[i]); x > d {
				d = x
			}
		}
		return d, nil
	case DistTV:
		d, _ := Distance(a, b, DistL1)
		return d / 2, nil
	case DistKL:
		d := 0.0
		for i := range a {
			if a[i] != 0 {
				d += a[i] * (math.Log(a[i]) - math.Log(b[i]))
			}
		}
		return d, nil
	case DistHellinger:
		d := 0.0
		for i := range a {
			x := math.Sqrt(a[i]) - math.Sqrt(b[i])
			d += x * x
		}
		return d / 2, nil
	default:
		return 0, ErrUnknownKind
	}
}
