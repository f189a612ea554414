package modelselection

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/dataset"
	"github.com/tanvis507/playerknn/pkg/errors"
)

// twelveRecords builds the canonical 12-row fixture: 6 subscribed, 6 not.
func twelveRecords() *dataset.Dataset {
	records := make([]dataset.PlayerRecord, 0, 12)
	for i := 0; i < 12; i++ {
		records = append(records, dataset.PlayerRecord{
			Age:         float64(15 + i),
			Gender:      "Male",
			Experience:  "Regular",
			PlayedHours: float64(i) * 1.5,
			Subscribe:   i%2 == 0,
		})
	}
	return dataset.New(records)
}

func classCounts(ds *dataset.Dataset) (pos, neg int) {
	for _, rec := range ds.Records() {
		if rec.Subscribe {
			pos++
		} else {
			neg++
		}
	}
	return pos, neg
}

func TestTrainTestSplitSizes(t *testing.T) {
	ds := twelveRecords()
	train, test, err := TrainTestSplit(ds, 0.75, 1234)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	if train.Len() != 9 {
		t.Errorf("train.Len() = %d, want 9", train.Len())
	}
	if test.Len() != 3 {
		t.Errorf("test.Len() = %d, want 3", test.Len())
	}
	if train.Len()+test.Len() != ds.Len() {
		t.Errorf("partition sizes %d+%d != %d", train.Len(), test.Len(), ds.Len())
	}

	// Each class contributes 4 or 5 records to the train partition.
	pos, neg := classCounts(train)
	if pos < 4 || pos > 5 || neg < 4 || neg > 5 {
		t.Errorf("train class counts = %d/%d, want 4-5 each", pos, neg)
	}
}

func TestTrainTestSplitDisjoint(t *testing.T) {
	records := make([]dataset.PlayerRecord, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, dataset.PlayerRecord{
			Age:       float64(i), // unique, so records are identifiable
			Gender:    "Female",
			Subscribe: i < 8,
		})
	}
	ds := dataset.New(records)

	train, test, err := TrainTestSplit(ds, 0.6, 99)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	seen := make(map[float64]bool)
	for _, rec := range train.Records() {
		seen[rec.Age] = true
	}
	for _, rec := range test.Records() {
		if seen[rec.Age] {
			t.Errorf("record with age %v appears in both partitions", rec.Age)
		}
		seen[rec.Age] = true
	}
	if len(seen) != 20 {
		t.Errorf("partitions cover %d records, want 20", len(seen))
	}
}

func TestTrainTestSplitStratification(t *testing.T) {
	// 30 records, 10 subscribed: both partitions stay within one record of
	// the 1/3 source proportion.
	records := make([]dataset.PlayerRecord, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, dataset.PlayerRecord{
			Age:       float64(i),
			Gender:    "Male",
			Subscribe: i%3 == 0,
		})
	}
	ds := dataset.New(records)

	for _, fraction := range []float64{0.5, 0.7, 0.8} {
		train, test, err := TrainTestSplit(ds, fraction, 7)
		if err != nil {
			t.Fatalf("TrainTestSplit(%v) error = %v", fraction, err)
		}
		for name, part := range map[string]*dataset.Dataset{"train": train, "test": test} {
			if part.Len() == 0 {
				continue
			}
			tolerance := 1.0 / 10 // one record's worth of the smaller class
			if diff := math.Abs(part.ClassBalance() - ds.ClassBalance()); diff > tolerance {
				t.Errorf("fraction %v: %s balance off by %v, tolerance %v", fraction, name, diff, tolerance)
			}
		}
	}
}

func TestTrainTestSplitDeterminism(t *testing.T) {
	ds := twelveRecords()

	train1, test1, err := TrainTestSplit(ds, 0.75, 1234)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}
	train2, test2, err := TrainTestSplit(ds, 0.75, 1234)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	for i := 0; i < train1.Len(); i++ {
		if train1.Record(i) != train2.Record(i) {
			t.Fatalf("train record %d differs between identical runs", i)
		}
	}
	for i := 0; i < test1.Len(); i++ {
		if test1.Record(i) != test2.Record(i) {
			t.Fatalf("test record %d differs between identical runs", i)
		}
	}

	// Other seeds cannot all reproduce the same partition.
	differs := false
	for seed := int64(1); seed <= 5 && !differs; seed++ {
		train3, _, err := TrainTestSplit(ds, 0.75, seed)
		if err != nil {
			t.Fatalf("TrainTestSplit() error = %v", err)
		}
		for i := 0; i < train1.Len(); i++ {
			if train1.Record(i) != train3.Record(i) {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Error("five different seeds all produced the 1234 train partition")
	}
}

func TestTrainTestSplitValidation(t *testing.T) {
	ds := twelveRecords()

	for _, fraction := range []float64{0, -0.5, 1.5} {
		if _, _, err := TrainTestSplit(ds, fraction, 1); err == nil {
			t.Errorf("TrainTestSplit(fraction=%v) error = nil, want ValidationError", fraction)
		}
	}

	if _, _, err := TrainTestSplit(dataset.New(nil), 0.5, 1); err == nil {
		t.Error("TrainTestSplit(empty) error = nil, want ValueError")
	}
}

func TestStratifiedKFold(t *testing.T) {
	// 10 labels, 4 positive.
	y := mat.NewDense(10, 1, []float64{1, 0, 1, 0, 0, 1, 0, 0, 1, 0})

	folds, err := NewStratifiedKFold(2, 42).Split(y)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(folds) != 2 {
		t.Fatalf("len(folds) = %d, want 2", len(folds))
	}

	seen := make(map[int]int)
	for f, fold := range folds {
		if len(fold.TrainIndices)+len(fold.TestIndices) != 10 {
			t.Errorf("fold %d covers %d indices, want 10", f, len(fold.TrainIndices)+len(fold.TestIndices))
		}
		pos := 0
		for _, idx := range fold.TestIndices {
			seen[idx]++
			if y.At(idx, 0) == 1 {
				pos++
			}
		}
		// 4 positives over 2 folds: exactly 2 per fold.
		if pos != 2 {
			t.Errorf("fold %d has %d positive validation rows, want 2", f, pos)
		}
	}
	if len(seen) != 10 {
		t.Errorf("validation sets cover %d indices, want 10", len(seen))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d appears in %d validation sets, want 1", idx, count)
		}
	}
}

func TestStratifiedKFoldValidation(t *testing.T) {
	y := mat.NewDense(4, 1, []float64{1, 0, 1, 0})

	if _, err := NewStratifiedKFold(1, 0).Split(y); err == nil {
		t.Error("Split() with 1 fold error = nil, want ValidationError")
	}
	if _, err := NewStratifiedKFold(5, 0).Split(y); err == nil {
		t.Error("Split() with more folds than samples error = nil, want ValidationError")
	} else {
		var valErr *errors.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("Split() error = %v, want ValidationError", err)
		}
	}
}
