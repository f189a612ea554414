// Standard attribute keys for pipeline logging. Keys follow a hierarchical
// naming convention ("model.name", "data.samples") so events can be grouped
// and filtered during log analysis.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model or transformer type.
	// Examples: "KNeighborsClassifier", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "tune", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "dataset", "modelselection", "pipeline"
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of rows involved in an operation.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns involved.
	FeaturesKey = "data.features"

	// DroppedKey is the number of rows discarded during cleaning.
	DroppedKey = "data.dropped"
)

// Tuning and evaluation metrics.
const (
	// NeighborsKey is the neighbor count k of a KNN model.
	NeighborsKey = "knn.k"

	// FoldsKey is the number of cross-validation folds.
	FoldsKey = "cv.folds"

	// AccuracyKey is a fraction-correct metric value.
	AccuracyKey = "metric.accuracy"

	// SeedKey is the PRNG seed controlling the stratified splits.
	SeedKey = "run.seed"
)
