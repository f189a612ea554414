// Package playerknn predicts whether a game-server player subscribes to the
// newsletter, using a K-nearest-neighbors classifier tuned by stratified
// cross-validation.
//
// The repository is a batch analysis pipeline, not a service: data flows
// strictly forward from loading through splitting, scaling, tuning, and
// evaluation, and every stage exchanges immutable values.
//
// # Quick Start
//
//	ds, clean, err := dataset.Load("players.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("kept %d rows, dropped %d with missing age\n", clean.Rows, clean.Dropped)
//
//	result, err := pipeline.Run(ds, pipeline.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("best k=%d, test accuracy %.3f\n", result.BestK, result.Report.Accuracy)
//
// # Packages
//
//   - dataset: table loading, cleaning, and feature-matrix assembly
//   - preprocessing: feature standardization (StandardScaler)
//   - neighbors: the KNN classifier
//   - modelselection: stratified splitting and the cross-validated
//     neighbor-count search
//   - metrics: accuracy and the confusion matrix
//   - pipeline: end-to-end orchestration
//   - output: accuracy-curve rendering
//   - core/model, core/parallel, pkg/errors, pkg/log: shared infrastructure
//
// # Reproducibility
//
// Every shuffle is driven by the run seed, so a given seed and input
// ordering reproduce the same split, folds, tuned k, and report.
package playerknn
