package main

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Anomaly is the model-minus-tide residual series.
func Anomaly(zeta, tide []float64) []float64 {
	ret := make([]float64, len(zeta))
	for i := range zeta {
		ret[i] = zeta[i] - tide[i]
	}
	return ret
}

func colVec(v []float64) *mat.Dense {
	data := make([]float64, len(v))
	copy(data, v)
	return mat.NewDense(len(v), 1, data)
}

// Norm computes the Euclidean norm between vectors a and b
func Norm(a, b *mat.Dense) float64 {
	var diff mat.Dense
	diff.Sub(a, b)
	return mat.Norm(&diff, 2)
}

// RMSD computes the root-mean-square deviation between vectors a and
// b
func RMSD(a, b *mat.Dense) (ret float64) {
	as := a.RawMatrix().Data
	bs := b.RawMatrix().Data
	if len(as) != len(bs) {
		panic("dimension mismatch")
	}
	var count int
	for i := range as {
		diff := as[i] - bs[i]
		ret += diff * diff
		count++
	}
	ret /= float64(count)
	return math.Sqrt(ret)
}

// MaxAbs returns the largest absolute value in v.
func MaxAbs(v []float64) (ret float64) {
	for _, x := range v {
		if a := math.Abs(x); a > ret {
			ret = a
		}
	}
	return
}
