// Package metrics provides the evaluation metrics for the binary
// subscription outcome: accuracy and a 2×2 confusion matrix with
// subscribe = true as the positive class.
package metrics

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/pkg/errors"
)

// Accuracy returns the fraction of predictions matching the truth.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix computes Accuracy over the first column of n×1 matrices.
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tVec, err := toVec("AccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pVec, err := toVec("AccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(tVec, pVec)
}

// ConfusionMatrix holds the 2×2 breakdown of predicted vs. true binary
// labels. The positive class is the subscribed label (1).
type ConfusionMatrix struct {
	TruePositive  int
	TrueNegative  int
	FalsePositive int
	FalseNegative int
}

// Total returns the number of predictions counted.
func (cm ConfusionMatrix) Total() int {
	return cm.TruePositive + cm.TrueNegative + cm.FalsePositive + cm.FalseNegative
}

// Accuracy returns the fraction of correct predictions in the matrix.
func (cm ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.TruePositive+cm.TrueNegative) / float64(total)
}

// String renders the matrix counts on one line.
func (cm ConfusionMatrix) String() string {
	return fmt.Sprintf("ConfusionMatrix(tp=%d, tn=%d, fp=%d, fn=%d)",
		cm.TruePositive, cm.TrueNegative, cm.FalsePositive, cm.FalseNegative)
}

// MarshalZerologObject adds the matrix counts to a zerolog event.
func (cm ConfusionMatrix) MarshalZerologObject(e *zerolog.Event) {
	e.Int("tp", cm.TruePositive).
		Int("tn", cm.TrueNegative).
		Int("fp", cm.FalsePositive).
		Int("fn", cm.FalseNegative)
}

// NewConfusionMatrix counts true/false positives and negatives over n×1
// label matrices, treating 1 as the positive class.
func NewConfusionMatrix(yTrue, yPred mat.Matrix) (ConfusionMatrix, error) {
	tVec, err := toVec("NewConfusionMatrix", yTrue)
	if err != nil {
		return ConfusionMatrix{}, err
	}
	pVec, err := toVec("NewConfusionMatrix", yPred)
	if err != nil {
		return ConfusionMatrix{}, err
	}
	n := tVec.Len()
	if pVec.Len() != n {
		return ConfusionMatrix{}, errors.NewDimensionError("NewConfusionMatrix", n, pVec.Len(), 0)
	}

	var cm ConfusionMatrix
	for i := 0; i < n; i++ {
		truth := tVec.AtVec(i) == 1
		pred := pVec.AtVec(i) == 1
		switch {
		case truth && pred:
			cm.TruePositive++
		case !truth && !pred:
			cm.TrueNegative++
		case !truth && pred:
			cm.FalsePositive++
		default:
			cm.FalseNegative++
		}
	}
	return cm, nil
}

// Report bundles the evaluation of one prediction set.
type Report struct {
	Accuracy  float64
	Confusion ConfusionMatrix
	N         int
}

// MarshalZerologObject adds the report fields to a zerolog event.
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("accuracy", r.Accuracy).
		Int("n", r.N).
		Object("confusion", r.Confusion)
}

// Evaluate computes accuracy and the confusion matrix for a prediction set.
func Evaluate(yTrue, yPred mat.Matrix) (Report, error) {
	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	acc, err := AccuracyMatrix(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	return Report{Accuracy: acc, Confusion: cm, N: cm.Total()}, nil
}

// toVec extracts the first column of an n×1 matrix as a vector.
func toVec(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "nil matrix")
	}
	r, c := m.Dims()
	if r == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	if c != 1 {
		return nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}
