// Package neighbors implements a K-nearest-neighbors classifier over a
// standardized feature space. The model is lazy: Fit stores the training
// vectors and labels, and Predict scans them for each query.
//
// Tie-breaking is explicit and deterministic: neighbors are ordered by
// Euclidean distance with ties resolved by training-row order, and a tied
// majority vote goes to the label of the nearest tied neighbor.
package neighbors

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/core/model"
	"github.com/tanvis507/playerknn/core/parallel"
	"github.com/tanvis507/playerknn/pkg/errors"
)

// Queries below this row count are predicted sequentially.
const parallelThreshold = 256

// KNeighborsClassifier is a uniform-weight KNN classifier. K must be a
// positive odd number so a two-class vote cannot split evenly.
type KNeighborsClassifier struct {
	model.BaseEstimator

	// K is the neighbor count consulted per query.
	K int

	trainX    *mat.Dense
	trainY    []float64
	classes   []float64
	nFeatures int
}

// NewKNeighborsClassifier creates an unfitted classifier with the given
// neighbor count. K is validated by Fit.
func NewKNeighborsClassifier(k int) *KNeighborsClassifier {
	return &KNeighborsClassifier{K: k}
}

// Fit stores the training feature vectors and labels. X is n×d, y is n×1.
func (c *KNeighborsClassifier) Fit(X, y mat.Matrix) error {
	if c.K < 1 {
		return errors.NewValidationError("k", "must be a positive integer", c.K)
	}
	if c.K%2 == 0 {
		return errors.NewValidationError("k", "must be odd to avoid vote ties", c.K)
	}

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("KNeighborsClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return errors.NewDimensionError("KNeighborsClassifier.Fit", nSamples, yRows, 0)
	}
	if c.K > nSamples {
		return errors.NewValidationError("k", fmt.Sprintf("must not exceed the %d training samples", nSamples), c.K)
	}

	c.trainX = mat.DenseCopyOf(X)
	c.trainY = make([]float64, nSamples)
	seen := make(map[float64]bool)
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		c.trainY[i] = label
		if !seen[label] {
			seen[label] = true
			c.classes = append(c.classes, label)
		}
	}
	sort.Float64s(c.classes)

	c.nFeatures = nFeatures
	c.SetFitted()
	return nil
}

// Predict returns an n×1 matrix of predicted labels for X.
func (c *KNeighborsClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNeighborsClassifier", "Predict")
	}

	nQueries, nFeatures := X.Dims()
	if nFeatures != c.nFeatures {
		return nil, errors.NewDimensionError("KNeighborsClassifier.Predict", c.nFeatures, nFeatures, 1)
	}
	if nQueries == 0 {
		return nil, errors.NewModelError("KNeighborsClassifier.Predict", "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(nQueries, 1, nil)
	parallel.ParallelizeWithThreshold(nQueries, parallelThreshold, func(start, end int) {
		query := make([]float64, c.nFeatures)
		for i := start; i < end; i++ {
			for j := 0; j < c.nFeatures; j++ {
				query[j] = X.At(i, j)
			}
			out.Set(i, 0, c.predictOne(query))
		}
	})

	return out, nil
}

// PredictProba returns an n×len(Classes()) matrix of neighbor vote
// fractions, columns ordered as Classes().
func (c *KNeighborsClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNeighborsClassifier", "PredictProba")
	}

	nQueries, nFeatures := X.Dims()
	if nFeatures != c.nFeatures {
		return nil, errors.NewDimensionError("KNeighborsClassifier.PredictProba", c.nFeatures, nFeatures, 1)
	}
	if nQueries == 0 {
		return nil, errors.NewModelError("KNeighborsClassifier.PredictProba", "empty data", errors.ErrEmptyData)
	}

	classCol := make(map[float64]int, len(c.classes))
	for j, label := range c.classes {
		classCol[label] = j
	}

	out := mat.NewDense(nQueries, len(c.classes), nil)
	parallel.ParallelizeWithThreshold(nQueries, parallelThreshold, func(start, end int) {
		query := make([]float64, c.nFeatures)
		for i := start; i < end; i++ {
			for j := 0; j < c.nFeatures; j++ {
				query[j] = X.At(i, j)
			}
			for _, nb := range c.nearest(query) {
				out.Set(i, classCol[c.trainY[nb.index]], out.At(i, classCol[c.trainY[nb.index]])+1)
			}
			for j := range c.classes {
				out.Set(i, j, out.At(i, j)/float64(c.K))
			}
		}
	})

	return out, nil
}

// Score returns the fraction of rows in X whose predicted label matches y.
func (c *KNeighborsClassifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	yRows, _ := y.Dims()
	pRows, _ := pred.Dims()
	if yRows != pRows {
		return 0, errors.NewDimensionError("KNeighborsClassifier.Score", pRows, yRows, 0)
	}
	correct := 0
	for i := 0; i < pRows; i++ {
		if pred.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(pRows), nil
}

// Classes returns the unique label values seen during fitting, ascending.
func (c *KNeighborsClassifier) Classes() []float64 {
	out := make([]float64, len(c.classes))
	copy(out, c.classes)
	return out
}

// GetParams returns the classifier's hyperparameters.
func (c *KNeighborsClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": c.K,
		"weights":     "uniform",
		"metric":      "euclidean",
	}
}

// String returns a short description of the classifier.
func (c *KNeighborsClassifier) String() string {
	if !c.IsFitted() {
		return fmt.Sprintf("KNeighborsClassifier(n_neighbors=%d)", c.K)
	}
	n, _ := c.trainX.Dims()
	return fmt.Sprintf("KNeighborsClassifier(n_neighbors=%d, n_samples=%d, n_features=%d)", c.K, n, c.nFeatures)
}

type neighbor struct {
	dist  float64 // squared Euclidean distance
	index int     // training row, breaks distance ties
}

// nearest returns the K nearest training rows for a query, ordered by
// (distance, training index).
func (c *KNeighborsClassifier) nearest(query []float64) []neighbor {
	n, _ := c.trainX.Dims()
	all := make([]neighbor, n)
	for i := 0; i < n; i++ {
		row := c.trainX.RawRowView(i)
		d := 0.0
		for j, q := range query {
			diff := q - row[j]
			d += diff * diff
		}
		all[i] = neighbor{dist: d, index: i}
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].dist != all[b].dist {
			return all[a].dist < all[b].dist
		}
		return all[a].index < all[b].index
	})
	return all[:c.K]
}

func (c *KNeighborsClassifier) predictOne(query []float64) float64 {
	nearest := c.nearest(query)

	votes := make(map[float64]int, 2)
	maxVotes := 0
	for _, nb := range nearest {
		label := c.trainY[nb.index]
		votes[label]++
		if votes[label] > maxVotes {
			maxVotes = votes[label]
		}
	}

	// A label tie goes to the nearest neighbor carrying a tied label.
	for _, nb := range nearest {
		if votes[c.trainY[nb.index]] == maxVotes {
			return c.trainY[nb.index]
		}
	}
	return c.trainY[nearest[0].index] // unreachable
}
