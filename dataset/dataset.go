// Package dataset defines the in-memory representation of the player table:
// immutable value types for records and datasets, the CSV loader that cleans
// raw rows, and feature-matrix assembly with one-hot encoding for
// categorical columns.
package dataset

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tanvis507/playerknn/pkg/errors"
)

// Feature column names accepted by FeatureMatrix.
const (
	FeatureAge         = "age"
	FeaturePlayedHours = "played_hours"
	FeatureExperience  = "experience"
	FeatureGender      = "gender"
)

// experienceRank is the canonical ordering of the experience column. Levels
// not listed here sort after the known ones, in order of first appearance.
var experienceRank = map[string]int{
	"Beginner": 0,
	"Amateur":  1,
	"Regular":  2,
	"Veteran":  3,
	"Pro":      4,
}

// PlayerRecord is one cleaned row of the player table. Age is always
// present after cleaning; Gender and Experience are restricted to the level
// sets observed in the source table.
type PlayerRecord struct {
	Age         float64
	Gender      string
	Experience  string
	PlayedHours float64
	Subscribe   bool
}

// Dataset is an ordered, immutable sequence of cleaned player records
// together with the observed categorical level vocabularies. Subsets share
// their parent's vocabularies, so one-hot encodings stay aligned across
// train/test partitions.
type Dataset struct {
	records          []PlayerRecord
	genderLevels     []string
	experienceLevels []string
}

// New builds a Dataset from cleaned records, deriving the categorical level
// sets from the values actually observed. Experience levels are ordered by
// their canonical rank (Beginner through Pro), gender levels by first
// appearance.
func New(records []PlayerRecord) *Dataset {
	ds := &Dataset{records: records}

	seenGender := make(map[string]bool)
	seenExp := make(map[string]bool)
	for _, rec := range records {
		if !seenGender[rec.Gender] {
			seenGender[rec.Gender] = true
			ds.genderLevels = append(ds.genderLevels, rec.Gender)
		}
		if !seenExp[rec.Experience] {
			seenExp[rec.Experience] = true
			ds.experienceLevels = append(ds.experienceLevels, rec.Experience)
		}
	}

	sort.SliceStable(ds.experienceLevels, func(i, j int) bool {
		ri, iKnown := experienceRank[ds.experienceLevels[i]]
		rj, jKnown := experienceRank[ds.experienceLevels[j]]
		if iKnown && jKnown {
			return ri < rj
		}
		// Known levels before unknown ones; unknown keep appearance order.
		return iKnown && !jKnown
	})

	return ds
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	return len(ds.records)
}

// Record returns the record at index i.
func (ds *Dataset) Record(i int) PlayerRecord {
	return ds.records[i]
}

// Records returns the underlying record slice. Callers must treat it as
// read-only.
func (ds *Dataset) Records() []PlayerRecord {
	return ds.records
}

// GenderLevels returns a copy of the observed gender levels.
func (ds *Dataset) GenderLevels() []string {
	out := make([]string, len(ds.genderLevels))
	copy(out, ds.genderLevels)
	return out
}

// ExperienceLevels returns a copy of the observed experience levels in
// canonical order.
func (ds *Dataset) ExperienceLevels() []string {
	out := make([]string, len(ds.experienceLevels))
	copy(out, ds.experienceLevels)
	return out
}

// ClassBalance returns the fraction of records with Subscribe = true.
// It returns 0 for an empty dataset.
func (ds *Dataset) ClassBalance() float64 {
	if len(ds.records) == 0 {
		return 0
	}
	pos := 0
	for _, rec := range ds.records {
		if rec.Subscribe {
			pos++
		}
	}
	return float64(pos) / float64(len(ds.records))
}

// Subset returns a new Dataset containing the records at the given indices,
// in the given order. The subset shares the parent's categorical level
// vocabularies so encodings computed on one partition apply to another.
func (ds *Dataset) Subset(indices []int) *Dataset {
	records := make([]PlayerRecord, len(indices))
	for i, idx := range indices {
		records[i] = ds.records[idx]
	}
	return &Dataset{
		records:          records,
		genderLevels:     ds.genderLevels,
		experienceLevels: ds.experienceLevels,
	}
}

// Labels returns the subscribe labels as an n×1 vector with true = 1.
func (ds *Dataset) Labels() *mat.VecDense {
	y := mat.NewVecDense(len(ds.records), nil)
	for i, rec := range ds.records {
		if rec.Subscribe {
			y.SetVec(i, 1)
		}
	}
	return y
}

// FeatureMatrix assembles the numeric design matrix for the given feature
// columns, in order. Numeric columns map to a single matrix column;
// categorical columns (gender, experience) expand to one indicator column
// per observed level. The returned names slice labels each matrix column,
// e.g. "experience=Pro".
//
// Unknown feature names produce a DataError; an empty dataset or empty
// feature list produces a ValueError.
func (ds *Dataset) FeatureMatrix(features []string) (*mat.Dense, []string, error) {
	if len(ds.records) == 0 {
		return nil, nil, errors.NewValueError("Dataset.FeatureMatrix", "empty dataset")
	}
	if len(features) == 0 {
		return nil, nil, errors.NewValueError("Dataset.FeatureMatrix", "no features selected")
	}

	var names []string
	for _, f := range features {
		switch f {
		case FeatureAge, FeaturePlayedHours:
			names = append(names, f)
		case FeatureGender:
			for _, level := range ds.genderLevels {
				names = append(names, FeatureGender+"="+level)
			}
		case FeatureExperience:
			for _, level := range ds.experienceLevels {
				names = append(names, FeatureExperience+"="+level)
			}
		default:
			return nil, nil, errors.NewDataError(f, 0, "unknown feature column")
		}
	}

	X := mat.NewDense(len(ds.records), len(names), nil)
	for i, rec := range ds.records {
		col := 0
		for _, f := range features {
			switch f {
			case FeatureAge:
				X.Set(i, col, rec.Age)
				col++
			case FeaturePlayedHours:
				X.Set(i, col, rec.PlayedHours)
				col++
			case FeatureGender:
				for _, level := range ds.genderLevels {
					if rec.Gender == level {
						X.Set(i, col, 1)
					}
					col++
				}
			case FeatureExperience:
				for _, level := range ds.experienceLevels {
					if rec.Experience == level {
						X.Set(i, col, 1)
					}
					col++
				}
			}
		}
	}

	return X, names, nil
}
