// Package modelselection provides the stratified data partitioning and the
// cross-validated hyperparameter search for the neighbor count.
//
// All randomness flows through seeded PCG generators, so identical seeds
// and identical input ordering reproduce identical splits.
package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/dataset"
	"github.com/tanvis507/playerknn/pkg/errors"
)

// TrainTestSplit partitions a dataset into disjoint train and test subsets,
// stratified on the subscribe label.
//
// The train subset holds floor(trainFraction·n) records. Each class
// contributes floor(trainFraction·classN), and the remaining slots go to the
// classes with the largest fractional parts (ties resolved with the negative
// class first), which keeps every class proportion within one record of the
// parent's. Records keep their original dataset order inside each subset.
func TrainTestSplit(ds *dataset.Dataset, trainFraction float64, seed int64) (train, test *dataset.Dataset, err error) {
	if ds == nil || ds.Len() == 0 {
		return nil, nil, errors.NewValueError("TrainTestSplit", "empty dataset")
	}
	if trainFraction <= 0 || trainFraction > 1 {
		return nil, nil, errors.NewValidationError("trainFraction", "must be in (0, 1]", trainFraction)
	}

	// Class partitions in label order: negative (false) first.
	var classIndices [2][]int
	for i := 0; i < ds.Len(); i++ {
		if ds.Record(i).Subscribe {
			classIndices[1] = append(classIndices[1], i)
		} else {
			classIndices[0] = append(classIndices[0], i)
		}
	}

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	for _, indices := range classIndices {
		r.Shuffle(len(indices), func(a, b int) {
			indices[a], indices[b] = indices[b], indices[a]
		})
	}

	trainTotal := int(math.Floor(trainFraction * float64(ds.Len())))
	quotas := make([]int, 2)
	remainders := make([]float64, 2)
	assigned := 0
	for c, indices := range classIndices {
		exact := trainFraction * float64(len(indices))
		quotas[c] = int(math.Floor(exact))
		remainders[c] = exact - float64(quotas[c])
		assigned += quotas[c]
	}
	// Hand the leftover slots to the classes with the largest remainders.
	for assigned < trainTotal {
		best := -1
		for c := range quotas {
			if quotas[c] >= len(classIndices[c]) {
				continue
			}
			if best == -1 || remainders[c] > remainders[best] {
				best = c
			}
		}
		if best == -1 {
			break
		}
		quotas[best]++
		remainders[best] = -1
		assigned++
	}

	var trainIdx, testIdx []int
	for c, indices := range classIndices {
		trainIdx = append(trainIdx, indices[:quotas[c]]...)
		testIdx = append(testIdx, indices[quotas[c]:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	return ds.Subset(trainIdx), ds.Subset(testIdx), nil
}

// Fold is one train/validation partition of a cross-validation pass.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// StratifiedKFold produces k disjoint, label-stratified folds.
type StratifiedKFold struct {
	NSplits int
	Seed    int64
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(nSplits int, seed int64) *StratifiedKFold {
	return &StratifiedKFold{NSplits: nSplits, Seed: seed}
}

// Split generates stratified train/validation indices for each fold from an
// n×1 label matrix. Every index lands in exactly one fold's test set.
func (skf *StratifiedKFold) Split(y mat.Matrix) ([]Fold, error) {
	nSamples, _ := y.Dims()
	if nSamples == 0 {
		return nil, errors.NewValueError("StratifiedKFold.Split", "empty labels")
	}
	if skf.NSplits < 2 {
		return nil, errors.NewValidationError("folds", "must be at least 2", skf.NSplits)
	}
	if skf.NSplits > nSamples {
		return nil, errors.NewValidationError("folds", "must not exceed the sample count", skf.NSplits)
	}

	// Group indices by label, preserving input order within each class.
	classIndices := make(map[float64][]int)
	var classOrder []float64
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		if _, ok := classIndices[label]; !ok {
			classOrder = append(classOrder, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}

	r := rand.New(rand.NewPCG(uint64(skf.Seed), uint64(skf.Seed)))
	for _, label := range classOrder {
		indices := classIndices[label]
		r.Shuffle(len(indices), func(a, b int) {
			indices[a], indices[b] = indices[b], indices[a]
		})
	}

	folds := make([]Fold, skf.NSplits)

	// Distribute each class across folds, earlier folds absorbing the
	// remainder, mirroring the train/test quota rule.
	for _, label := range classOrder {
		indices := classIndices[label]
		foldSize := len(indices) / skf.NSplits
		remainder := len(indices) % skf.NSplits

		cur := 0
		for f := 0; f < skf.NSplits; f++ {
			take := foldSize
			if f < remainder {
				take++
			}
			folds[f].TestIndices = append(folds[f].TestIndices, indices[cur:cur+take]...)
			cur += take
		}
	}

	for f := range folds {
		sort.Ints(folds[f].TestIndices)
		inTest := make(map[int]bool, len(folds[f].TestIndices))
		for _, idx := range folds[f].TestIndices {
			inTest[idx] = true
		}
		for i := 0; i < nSamples; i++ {
			if !inTest[i] {
				folds[f].TrainIndices = append(folds[f].TrainIndices, i)
			}
		}
	}

	return folds, nil
}
