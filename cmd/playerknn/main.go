// Command playerknn runs the subscription analysis end to end: it loads and
// cleans the player table, tunes a KNN classifier by cross-validation, and
// reports held-out accuracy and the confusion matrix.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/tanvis507/playerknn/dataset"
	"github.com/tanvis507/playerknn/output"
	"github.com/tanvis507/playerknn/pipeline"
	"github.com/tanvis507/playerknn/pkg/log"
)

// envDefaults are CLI defaults that can be preset via the environment, so
// batch jobs can configure a run without flag plumbing.
type envDefaults struct {
	Data     string `env:"PLAYERKNN_DATA"`
	LogLevel string `env:"PLAYERKNN_LOG_LEVEL,default=info"`
	Seed     int64  `env:"PLAYERKNN_SEED,default=1234"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var env envDefaults
	if err := envconfig.Process(context.Background(), &env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	defaults := pipeline.DefaultConfig()
	defaults.Seed = env.Seed

	var (
		dataPath      string
		logLevel      string
		jsonLogs      bool
		trainFraction float64
		seed          int64
		candidateKs   []int
		folds         int
		features      []string
		passthrough   bool
		plotPath      string
		modelOut      string
	)

	cmd := &cobra.Command{
		Use:   "playerknn",
		Short: "Predict game-server newsletter subscription with a tuned KNN classifier",
		Long: `playerknn loads a delimited table of players (age, gender, experience,
played hours, subscribe), drops rows with missing age, tunes the neighbor
count of a KNN classifier by stratified cross-validation, and evaluates the
final model on a held-out partition.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataPath == "" {
				return fmt.Errorf("no input table: pass --data or set PLAYERKNN_DATA")
			}
			log.Setup(logLevel, !jsonLogs)
			logger := log.Component("cli")

			ds, clean, err := dataset.Load(dataPath)
			if err != nil {
				return err
			}
			logger.Info().
				Int(log.SamplesKey, clean.Rows).
				Int(log.DroppedKey, clean.Dropped).
				Msg("dataset loaded")

			cfg := pipeline.Config{
				TrainFraction:       trainFraction,
				Seed:                seed,
				CandidateKs:         candidateKs,
				Folds:               folds,
				Features:            features,
				PassthroughConstant: passthrough,
			}
			result, err := pipeline.Run(ds, cfg)
			if err != nil {
				return err
			}

			fmt.Printf("rows: %d (dropped %d with missing age)\n", clean.Rows, clean.Dropped)
			fmt.Printf("split: %d train / %d test\n", result.TrainSize, result.TestSize)
			fmt.Printf("best k: %d\n", result.BestK)
			for _, point := range result.Curve {
				fmt.Printf("  k=%-3d mean accuracy %.4f\n", point.K, point.MeanAccuracy)
			}
			cm := result.Report.Confusion
			fmt.Printf("test accuracy: %.4f over %d records\n", result.Report.Accuracy, result.Report.N)
			fmt.Printf("confusion: tp=%d tn=%d fp=%d fn=%d\n",
				cm.TruePositive, cm.TrueNegative, cm.FalsePositive, cm.FalseNegative)

			if plotPath != "" {
				if err := output.SaveAccuracyCurve(result.Curve, plotPath); err != nil {
					return err
				}
				logger.Info().Str("path", plotPath).Msg("accuracy curve saved")
			}
			if modelOut != "" {
				if err := result.Model.Save(modelOut); err != nil {
					return err
				}
				logger.Info().Str("path", modelOut).Msg("model saved")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", env.Data, "path to the player table (CSV)")
	cmd.Flags().StringVar(&logLevel, "log-level", env.LogLevel, "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "emit JSON logs instead of console output")
	cmd.Flags().Float64Var(&trainFraction, "train-fraction", defaults.TrainFraction, "fraction of records used for training")
	cmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "seed for the stratified splits")
	cmd.Flags().IntSliceVar(&candidateKs, "ks", defaults.CandidateKs, "candidate neighbor counts (odd, positive)")
	cmd.Flags().IntVar(&folds, "folds", defaults.Folds, "cross-validation folds")
	cmd.Flags().StringSliceVar(&features, "features", defaults.Features, "predictor columns (age, played_hours, experience, gender)")
	cmd.Flags().BoolVar(&passthrough, "passthrough-constant", false, "keep zero-variance features instead of failing")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write the per-k accuracy curve to this image file")
	cmd.Flags().StringVar(&modelOut, "model-out", "", "save the fitted model (gob) to this file")

	return cmd
}
