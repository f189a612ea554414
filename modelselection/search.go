package modelselection

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/core/parallel"
	"github.com/tanvis507/playerknn/neighbors"
	"github.com/tanvis507/playerknn/pkg/errors"
	"github.com/tanvis507/playerknn/pkg/log"
	"github.com/tanvis507/playerknn/preprocessing"
)

// KAccuracy is one point of the per-k accuracy curve.
type KAccuracy struct {
	K              int
	MeanAccuracy   float64
	FoldAccuracies []float64
}

// GridSearchResult holds the outcome of a neighbor-count search.
type GridSearchResult struct {
	// BestK is the candidate with the highest mean validation accuracy;
	// ties go to the smallest k.
	BestK int

	// Curve holds one entry per candidate, ascending by k, for inspection
	// or plotting.
	Curve []KAccuracy
}

// GridSearchCV tunes the neighbor count by stratified k-fold
// cross-validation. For every candidate k and every fold, a fresh scaler and
// classifier are fitted on the fold's training part and scored on its
// validation part; candidates are ranked by mean validation accuracy.
//
// Candidates are evaluated concurrently. Each evaluation owns its own scaler
// and model, so no fitted state is shared between goroutines.
type GridSearchCV struct {
	// CandidateKs are the neighbor counts to evaluate. Each must be a
	// positive odd integer.
	CandidateKs []int

	// Folds is the number of cross-validation folds (≥ 2).
	Folds int

	// Seed drives the stratified fold assignment.
	Seed int64

	// PassthroughConstant is forwarded to the per-fold scalers; leave it
	// false to fail on zero-variance features inside a fold.
	PassthroughConstant bool
}

// NewGridSearchCV creates a grid search over the given neighbor counts.
func NewGridSearchCV(candidateKs []int, folds int, seed int64) *GridSearchCV {
	return &GridSearchCV{CandidateKs: candidateKs, Folds: folds, Seed: seed}
}

// Fit runs the search on an unscaled training feature matrix X and label
// matrix y (n×1).
func (g *GridSearchCV) Fit(X, y mat.Matrix) (*GridSearchResult, error) {
	if len(g.CandidateKs) == 0 {
		return nil, errors.NewValidationError("candidateKs", "must not be empty", g.CandidateKs)
	}
	for _, k := range g.CandidateKs {
		if k < 1 || k%2 == 0 {
			return nil, errors.NewValidationError("candidateKs", "every candidate must be a positive odd integer", k)
		}
	}

	folds, err := NewStratifiedKFold(g.Folds, g.Seed).Split(y)
	if err != nil {
		return nil, err
	}

	ks := append([]int(nil), g.CandidateKs...)
	sort.Ints(ks)

	curve := make([]KAccuracy, len(ks))
	errs := make([]error, len(ks))
	parallel.ParallelizeWithThreshold(len(ks), 1, func(start, end int) {
		for i := start; i < end; i++ {
			curve[i], errs[i] = g.evaluateCandidate(ks[i], X, y, folds)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	best := curve[0]
	for _, point := range curve[1:] {
		// Strict greater keeps the smallest k among tied candidates,
		// since the curve is ascending by k.
		if point.MeanAccuracy > best.MeanAccuracy {
			best = point
		}
	}

	logger := log.Component("modelselection")
	logger.Debug().
		Int(log.NeighborsKey, best.K).
		Float64(log.AccuracyKey, best.MeanAccuracy).
		Int(log.FoldsKey, g.Folds).
		Msg("grid search complete")

	return &GridSearchResult{BestK: best.K, Curve: curve}, nil
}

// evaluateCandidate scores one neighbor count across all folds.
func (g *GridSearchCV) evaluateCandidate(k int, X, y mat.Matrix, folds []Fold) (KAccuracy, error) {
	point := KAccuracy{K: k, FoldAccuracies: make([]float64, len(folds))}

	for f, fold := range folds {
		trainX, trainY := subset(X, y, fold.TrainIndices)
		valX, valY := subset(X, y, fold.TestIndices)

		scaler := preprocessing.NewStandardScaler()
		scaler.PassthroughConstant = g.PassthroughConstant
		scaledTrain, err := scaler.FitTransform(trainX)
		if err != nil {
			return point, errors.Wrapf(err, "fold %d", f)
		}
		scaledVal, err := scaler.Transform(valX)
		if err != nil {
			return point, errors.Wrapf(err, "fold %d", f)
		}

		clf := neighbors.NewKNeighborsClassifier(k)
		if err := clf.Fit(scaledTrain, trainY); err != nil {
			return point, errors.Wrapf(err, "fold %d", f)
		}
		acc, err := clf.Score(scaledVal, valY)
		if err != nil {
			return point, errors.Wrapf(err, "fold %d", f)
		}
		point.FoldAccuracies[f] = acc
	}

	sum := 0.0
	for _, acc := range point.FoldAccuracies {
		sum += acc
	}
	point.MeanAccuracy = sum / float64(len(folds))
	return point, nil
}

// subset extracts the rows of X and y at the given indices, in ascending
// index order so downstream tie-breaks stay deterministic.
func subset(X, y mat.Matrix, indices []int) (mat.Matrix, mat.Matrix) {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	_, cols := X.Dims()
	xSub := mat.NewDense(len(sorted), cols, nil)
	ySub := mat.NewDense(len(sorted), 1, nil)
	for i, idx := range sorted {
		for j := 0; j < cols; j++ {
			xSub.Set(i, j, X.At(idx, j))
		}
		ySub.Set(i, 0, y.At(idx, 0))
	}
	return xSub, ySub
}
