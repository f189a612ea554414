package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Transforming the fitting data must yield sample mean 0 and sample
	// std 1 per feature.
	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += scaled.At(i, j)
		}
		mean := sum / float64(r)
		if math.Abs(mean) > 1e-9 {
			t.Errorf("feature %d mean = %v, want 0", j, mean)
		}

		sumSq := 0.0
		for i := 0; i < r; i++ {
			diff := scaled.At(i, j) - mean
			sumSq += diff * diff
		}
		std := math.Sqrt(sumSq / float64(r-1))
		if math.Abs(std-1) > 1e-9 {
			t.Errorf("feature %d sample std = %v, want 1", j, std)
		}
	}
}

func TestStandardScalerFrozenStatistics(t *testing.T) {
	train := mat.NewDense(3, 1, []float64{0, 1, 2})
	scaler := NewStandardScaler()
	if err := scaler.Fit(train); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	wantMean := scaler.Mean[0]
	wantScale := scaler.Scale[0]

	// Transforming unseen data must not touch the fitted statistics.
	unseen := mat.NewDense(2, 1, []float64{100, 200})
	if _, err := scaler.Transform(unseen); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if scaler.Mean[0] != wantMean || scaler.Scale[0] != wantScale {
		t.Errorf("statistics changed after Transform: mean %v→%v, scale %v→%v",
			wantMean, scaler.Mean[0], wantScale, scaler.Scale[0])
	}
}

func TestStandardScalerInverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 5, 2, 7, 4, 11})
	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(back.At(i, j)-X.At(i, j)) > 1e-9 {
				t.Errorf("round trip at (%d,%d) = %v, want %v", i, j, back.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerDegenerateFeature(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
	})

	scaler := NewStandardScaler()
	scaler.FeatureNames = []string{"age", "played_hours"}
	err := scaler.Fit(X)
	if err == nil {
		t.Fatal("Fit() error = nil, want DegenerateFeatureError")
	}
	var degenErr *errors.DegenerateFeatureError
	if !errors.As(err, &degenErr) {
		t.Fatalf("Fit() error = %v, want DegenerateFeatureError", err)
	}
	if degenErr.Index != 1 || degenErr.Feature != "played_hours" {
		t.Errorf("DegenerateFeatureError = %+v, want feature played_hours at index 1", degenErr)
	}
}

func TestStandardScalerPassthroughConstant(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
	})

	scaler := NewStandardScaler()
	scaler.PassthroughConstant = true
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	// The constant feature is centered but not scaled.
	for i := 0; i < 3; i++ {
		if scaled.At(i, 1) != 0 {
			t.Errorf("constant feature row %d = %v, want 0", i, scaled.At(i, 1))
		}
	}
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScaler()

	if _, err := scaler.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() before Fit error = nil, want NotFittedError")
	} else {
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("Transform() before Fit error = %v, want NotFittedError", err)
		}
	}

	if err := scaler.Fit(mat.NewDense(2, 1, []float64{1, 2})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := scaler.Transform(mat.NewDense(1, 2, []float64{1, 2})); err == nil {
		t.Error("Transform() with wrong width error = nil, want DimensionError")
	} else {
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("Transform() with wrong width error = %v, want DimensionError", err)
		}
	}
}
