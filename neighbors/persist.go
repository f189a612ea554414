package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/core/model"
	"github.com/tanvis507/playerknn/pkg/errors"
)

// knnSnapshot is the gob-encodable form of a fitted classifier.
type knnSnapshot struct {
	K         int
	NSamples  int
	NFeatures int
	Data      []float64
	Labels    []float64
}

// Save writes the fitted classifier to path using gob encoding.
func (c *KNeighborsClassifier) Save(path string) error {
	if !c.IsFitted() {
		return errors.NewNotFittedError("KNeighborsClassifier", "Save")
	}
	n, d := c.trainX.Dims()
	snap := knnSnapshot{
		K:         c.K,
		NSamples:  n,
		NFeatures: d,
		Data:      append([]float64(nil), c.trainX.RawMatrix().Data...),
		Labels:    append([]float64(nil), c.trainY...),
	}
	return model.SaveModel(&snap, path)
}

// Load restores a classifier previously written by Save. The receiver's
// prior state is replaced.
func (c *KNeighborsClassifier) Load(path string) error {
	var snap knnSnapshot
	if err := model.LoadModel(&snap, path); err != nil {
		return err
	}

	c.Reset()
	c.K = snap.K
	c.nFeatures = snap.NFeatures
	c.trainX = mat.NewDense(snap.NSamples, snap.NFeatures, snap.Data)
	c.trainY = snap.Labels
	c.classes = nil
	seen := make(map[float64]bool)
	for _, label := range c.trainY {
		if !seen[label] {
			seen[label] = true
			c.classes = append(c.classes, label)
		}
	}
	sort.Float64s(c.classes)
	c.SetFitted()
	return nil
}
