// Package model provides the core interfaces and base types shared by the
// estimators and transformers in this repository.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for models that learn from labeled data.
type Fitter interface {
	// Fit trains the model on feature matrix X and label vector y (n×1).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for fitted models that produce predictions.
type Predictor interface {
	// Predict returns an n×1 matrix of predicted labels for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can score themselves on data.
type Scorer interface {
	// Score returns the fraction of correctly predicted labels.
	Score(X, y mat.Matrix) (float64, error)
}

// Classifier combines the interfaces a classification model satisfies.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// PredictProba returns an n×len(Classes()) matrix of class probability
	// estimates, columns ordered as Classes().
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the unique label values seen during fitting.
	Classes() []float64
}

// Transformer is the interface for data transformations that are fitted on
// one partition and applied to others.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the fitted transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits on X and returns the transformed X.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter is the interface for models that expose their
// hyperparameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// Persistable is the interface for models that can be saved and loaded.
type Persistable interface {
	// Save writes the model to a file.
	Save(path string) error

	// Load reads the model from a file.
	Load(path string) error
}
