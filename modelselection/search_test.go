package modelselection

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Two tight, well-separated clusters: every fold classifies perfectly for
// every small k.
func separatedClusters() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(8, 2, []float64{
		0.0, 0.0,
		0.1, 0.1,
		0.2, 0.0,
		0.1, 0.0,
		10.0, 10.0,
		10.1, 10.1,
		10.2, 10.0,
		10.1, 10.0,
	})
	y := mat.NewDense(8, 1, []float64{0, 0, 0, 0, 1, 1, 1, 1})
	return X, y
}

func TestGridSearchCVTieBreaksToSmallestK(t *testing.T) {
	X, y := separatedClusters()

	result, err := NewGridSearchCV([]int{3, 1}, 2, 7).Fit(X, y)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// Both candidates score a perfect mean accuracy, so the tie must go to
	// the smaller k even though it was listed second.
	for _, point := range result.Curve {
		if point.MeanAccuracy != 1.0 {
			t.Errorf("k=%d mean accuracy = %v, want 1.0", point.K, point.MeanAccuracy)
		}
	}
	if result.BestK != 1 {
		t.Errorf("BestK = %d, want 1 (smallest among tied)", result.BestK)
	}
}

func TestGridSearchCVCurve(t *testing.T) {
	X, y := separatedClusters()

	result, err := NewGridSearchCV([]int{5, 1, 3}, 2, 7).Fit(X, y)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if len(result.Curve) != 3 {
		t.Fatalf("len(Curve) = %d, want 3", len(result.Curve))
	}
	wantKs := []int{1, 3, 5}
	for i, point := range result.Curve {
		if point.K != wantKs[i] {
			t.Errorf("Curve[%d].K = %d, want %d (ascending)", i, point.K, wantKs[i])
		}
		if len(point.FoldAccuracies) != 2 {
			t.Errorf("Curve[%d] has %d fold accuracies, want 2", i, len(point.FoldAccuracies))
		}
	}
}

// BestK must always equal the argmax of the returned curve, with ties going
// to the smallest k.
func TestGridSearchCVBestMatchesCurve(t *testing.T) {
	// A deliberately messy layout so fold accuracies vary by k.
	X := mat.NewDense(12, 2, []float64{
		0.0, 0.0,
		1.0, 0.2,
		0.2, 1.0,
		3.0, 3.2,
		0.5, 0.5,
		2.8, 3.0,
		3.0, 0.1,
		0.1, 3.0,
		3.2, 2.9,
		1.5, 1.5,
		2.9, 3.1,
		0.3, 0.2,
	})
	y := mat.NewDense(12, 1, []float64{0, 0, 0, 1, 0, 1, 0, 0, 1, 1, 1, 0})

	result, err := NewGridSearchCV([]int{1, 3, 5}, 3, 11).Fit(X, y)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	best := result.Curve[0]
	for _, point := range result.Curve[1:] {
		if point.MeanAccuracy > best.MeanAccuracy {
			best = point
		}
	}
	if result.BestK != best.K {
		t.Errorf("BestK = %d, but curve argmax (smallest-k ties) is %d", result.BestK, best.K)
	}
}

func TestGridSearchCVDeterminism(t *testing.T) {
	X, y := separatedClusters()
	search := NewGridSearchCV([]int{1, 3}, 2, 123)

	first, err := search.Fit(X, y)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	second, err := search.Fit(X, y)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if first.BestK != second.BestK {
		t.Errorf("BestK differs between identical runs: %d vs %d", first.BestK, second.BestK)
	}
	for i := range first.Curve {
		if first.Curve[i].MeanAccuracy != second.Curve[i].MeanAccuracy {
			t.Errorf("Curve[%d] differs between identical runs", i)
		}
	}
}

func TestGridSearchCVValidation(t *testing.T) {
	X, y := separatedClusters()

	tests := []struct {
		name  string
		ks    []int
		folds int
	}{
		{name: "no candidates", ks: nil, folds: 2},
		{name: "even candidate", ks: []int{2}, folds: 2},
		{name: "non-positive candidate", ks: []int{-1}, folds: 2},
		{name: "single fold", ks: []int{1}, folds: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGridSearchCV(tt.ks, tt.folds, 0).Fit(X, y); err == nil {
				t.Error("Fit() error = nil, want validation error")
			}
		})
	}
}
