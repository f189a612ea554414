// Package preprocessing provides feature standardization fitted on the
// training partition only and applied unchanged to any other partition.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/core/model"
	"github.com/tanvis507/playerknn/pkg/errors"
)

// StandardScaler centers and scales each feature column to zero mean and
// unit standard deviation. The statistics are computed once by Fit, frozen,
// and reused by every subsequent Transform, so no information from unseen
// partitions leaks into them.
//
// Scale holds the sample standard deviation (n−1 denominator). A feature
// with exactly zero variance makes scaling undefined: Fit returns a
// DegenerateFeatureError unless PassthroughConstant is set, in which case
// the feature is centered but left unscaled.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the per-feature training means.
	Mean []float64

	// Scale holds the per-feature training sample standard deviations.
	Scale []float64

	// NFeatures is the feature count seen during Fit.
	NFeatures int

	// FeatureNames optionally labels columns for error reporting.
	FeatureNames []string

	// PassthroughConstant leaves zero-variance features unscaled instead of
	// failing the fit.
	PassthroughConstant bool
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes per-feature mean and sample standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	mean := make([]float64, c)
	scale := make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - mean[j]
			sumSquares += diff * diff
		}
		variance := 0.0
		if r > 1 {
			variance = sumSquares / float64(r-1)
		}
		scale[j] = math.Sqrt(variance)

		if scale[j] == 0 {
			if !s.PassthroughConstant {
				return errors.NewDegenerateFeatureError(s.featureName(j), j)
			}
			// Constant feature: center it, divide by 1.
			scale[j] = 1.0
		}
	}

	s.NFeatures = c
	s.Mean = mean
	s.Scale = scale
	s.SetFitted()
	return nil
}

// Transform standardizes X with the statistics learned by Fit.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}

	return result, nil
}

// FitTransform fits the scaler on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}

	return result, nil
}

// GetParams returns the scaler's parameters.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"passthrough_constant": s.PassthroughConstant,
	}
}

// String returns a short description of the scaler.
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d)", s.NFeatures)
}

func (s *StandardScaler) featureName(j int) string {
	if j < len(s.FeatureNames) {
		return s.FeatureNames[j]
	}
	return ""
}
