// Package pipeline wires the analysis stages end to end: stratified
// train/test split, cross-validated neighbor-count tuning, final fit, and
// held-out evaluation. Every stage consumes immutable values and produces
// new ones; the only shared state across a run is the seed.
package pipeline

import (
	"github.com/tanvis507/playerknn/dataset"
	"github.com/tanvis507/playerknn/metrics"
	"github.com/tanvis507/playerknn/modelselection"
	"github.com/tanvis507/playerknn/neighbors"
	"github.com/tanvis507/playerknn/pkg/errors"
	"github.com/tanvis507/playerknn/pkg/log"
	"github.com/tanvis507/playerknn/preprocessing"
)

// Config is the full configuration surface of a run.
type Config struct {
	// TrainFraction of records kept for training, in (0, 1].
	TrainFraction float64

	// Seed controls every stratified shuffle in the run.
	Seed int64

	// CandidateKs are the neighbor counts searched; positive odd integers.
	CandidateKs []int

	// Folds is the cross-validation fold count (≥ 2).
	Folds int

	// Features are the dataset columns used as predictors. Categorical
	// columns are one-hot encoded.
	Features []string

	// PassthroughConstant keeps zero-variance features (centered, unscaled)
	// instead of aborting. One-hot feature sets usually need this, since a
	// small fold can easily miss a level entirely.
	PassthroughConstant bool
}

// DefaultConfig returns the baseline configuration: age and played hours as
// predictors, 75/25 split, 5-fold search over odd k from 1 to 25.
func DefaultConfig() Config {
	ks := make([]int, 0, 13)
	for k := 1; k <= 25; k += 2 {
		ks = append(ks, k)
	}
	return Config{
		TrainFraction: 0.75,
		Seed:          1234,
		CandidateKs:   ks,
		Folds:         5,
		Features:      []string{dataset.FeatureAge, dataset.FeaturePlayedHours},
	}
}

// Validate checks the configuration before any data is touched.
func (c Config) Validate() error {
	if c.TrainFraction <= 0 || c.TrainFraction > 1 {
		return errors.NewValidationError("trainFraction", "must be in (0, 1]", c.TrainFraction)
	}
	if c.Folds < 2 {
		return errors.NewValidationError("folds", "must be at least 2", c.Folds)
	}
	if len(c.CandidateKs) == 0 {
		return errors.NewValidationError("candidateKs", "must not be empty", c.CandidateKs)
	}
	for _, k := range c.CandidateKs {
		if k < 1 || k%2 == 0 {
			return errors.NewValidationError("candidateKs", "every candidate must be a positive odd integer", k)
		}
	}
	if len(c.Features) == 0 {
		return errors.NewValidationError("features", "must not be empty", c.Features)
	}
	return nil
}

// Result is everything a run produces.
type Result struct {
	// BestK is the tuned neighbor count.
	BestK int

	// Curve is the per-k mean validation accuracy from the grid search.
	Curve []modelselection.KAccuracy

	// Report is the held-out evaluation of the final model.
	Report metrics.Report

	// Model is the classifier fitted on the full training partition with
	// BestK neighbors, over scaled features.
	Model *neighbors.KNeighborsClassifier

	// Scaler is the feature scaler fitted on the full training partition.
	Scaler *preprocessing.StandardScaler

	// FeatureNames labels the model's input columns, one-hot expanded.
	FeatureNames []string

	// TrainSize and TestSize are the partition row counts.
	TrainSize int
	TestSize  int
}

// Run executes the pipeline on a cleaned dataset.
func Run(ds *dataset.Dataset, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewValueError("pipeline.Run", "empty dataset")
	}

	logger := log.Component("pipeline")
	logger.Info().
		Int(log.SamplesKey, ds.Len()).
		Int64(log.SeedKey, cfg.Seed).
		Strs("features", cfg.Features).
		Msg("run started")

	train, test, err := modelselection.TrainTestSplit(ds, cfg.TrainFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	if test.Len() == 0 {
		return nil, errors.NewValidationError("trainFraction", "leaves no held-out records", cfg.TrainFraction)
	}

	trainX, names, err := train.FeatureMatrix(cfg.Features)
	if err != nil {
		return nil, err
	}
	trainY := train.Labels()

	search := modelselection.NewGridSearchCV(cfg.CandidateKs, cfg.Folds, cfg.Seed)
	search.PassthroughConstant = cfg.PassthroughConstant
	tuned, err := search.Fit(trainX, trainY)
	if err != nil {
		return nil, errors.Wrap(err, "neighbor-count search")
	}

	scaler := preprocessing.NewStandardScaler()
	scaler.FeatureNames = names
	scaler.PassthroughConstant = cfg.PassthroughConstant
	scaledTrain, err := scaler.FitTransform(trainX)
	if err != nil {
		return nil, err
	}

	clf := neighbors.NewKNeighborsClassifier(tuned.BestK)
	if err := clf.Fit(scaledTrain, trainY); err != nil {
		return nil, err
	}

	testX, _, err := test.FeatureMatrix(cfg.Features)
	if err != nil {
		return nil, err
	}
	scaledTest, err := scaler.Transform(testX)
	if err != nil {
		return nil, err
	}
	pred, err := clf.Predict(scaledTest)
	if err != nil {
		return nil, err
	}

	report, err := metrics.Evaluate(test.Labels(), pred)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int(log.NeighborsKey, tuned.BestK).
		Float64(log.AccuracyKey, report.Accuracy).
		Object("report", report).
		Msg("run finished")

	return &Result{
		BestK:        tuned.BestK,
		Curve:        tuned.Curve,
		Report:       report,
		Model:        clf,
		Scaler:       scaler,
		FeatureNames: names,
		TrainSize:    train.Len(),
		TestSize:     test.Len(),
	}, nil
}
