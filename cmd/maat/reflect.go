package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Chris4081/maat-core/internal/problem"
	"github.com/Chris4081/maat-core/internal/store"
)

var (
	reflectProblem     string
	reflectFile        string
	reflectLambda      float64
	reflectSteps       int
	reflectExplore     bool
	reflectExploration float64
	reflectSeed        int64
	reflectIters       int
	reflectDataDir     string
	reflectResume      string
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Run the reflection loop: seek, report, adjust the penalty, repeat",
	Long: `Runs repeated searches, doubling the safety penalty while any
constraint is violated and relaxing it once safe. Every step is logged
and, when --data is set, persisted as a trace and checkpoint.`,
	RunE: runReflect,
}

func init() {
	reflectCmd.Flags().StringVar(&reflectProblem, "problem", "", "Built-in problem name (see 'maat problems')")
	reflectCmd.Flags().StringVar(&reflectFile, "file", "", "YAML linear problem file")
	reflectCmd.Flags().Float64Var(&reflectLambda, "lambda", 0, "Starting safety penalty strength (0 = problem default)")
	reflectCmd.Flags().IntVar(&reflectSteps, "steps", 8, "Max reflection steps")
	reflectCmd.Flags().BoolVar(&reflectExplore, "explore-first", true, "Run the first step with global search")
	reflectCmd.Flags().Float64Var(&reflectExploration, "exploration", 0.5, "Exploration strength for global search, in [0,1]")
	reflectCmd.Flags().Int64Var(&reflectSeed, "seed", 42, "Random seed for global search")
	reflectCmd.Flags().IntVar(&reflectIters, "iters", 1000, "Max solver iterations per step")
	reflectCmd.Flags().StringVar(&reflectDataDir, "data", "", "Data directory for trace and checkpoint output")
	reflectCmd.Flags().StringVar(&reflectResume, "resume", "", "Run ID to resume from its latest checkpoint (requires --data)")

	rootCmd.AddCommand(reflectCmd)
}

func runReflect(cmd *cobra.Command, args []string) error {
	p, err := resolveProblem(reflectProblem, reflectFile)
	if err != nil {
		return err
	}

	runID := uuid.New().String()

	var trace *store.TraceWriter
	var checkpoints store.Store
	if reflectDataDir != "" {
		trace, err = store.NewTraceWriter(reflectDataDir, runID, false)
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer trace.Close()

		checkpoints, err = store.NewFSStore(reflectDataDir)
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
	}

	config := store.RunConfig{
		Problem:       p.Name,
		SafetyLambda:  reflectLambda,
		Exploration:   reflectExploration,
		ExploreFirst:  reflectExplore,
		Seed:          reflectSeed,
		MaxIterations: reflectIters,
		MaxSteps:      reflectSteps,
	}

	var resumeX []float64
	startLambda := reflectLambda
	if reflectResume != "" {
		if checkpoints == nil {
			return fmt.Errorf("--resume requires --data")
		}
		cp, err := checkpoints.LoadCheckpoint(reflectResume)
		if err != nil {
			return fmt.Errorf("failed to load checkpoint %s: %w", reflectResume, err)
		}
		if err := cp.IsCompatible(config); err != nil {
			return fmt.Errorf("cannot resume %s: %w", reflectResume, err)
		}
		resumeX = cp.X
		if startLambda == 0 {
			startLambda = cp.SafetyLambda
		}
		slog.Info("Resuming from checkpoint", "resume_run_id", reflectResume, "step", cp.Step, "lambda", cp.SafetyLambda)
	}

	slog.Info("Starting reflection run", "run_id", runID, "problem", p.Name, "steps", reflectSteps)

	observe := func(step problem.ReflectStep) {
		slog.Info("Reflection step",
			"step", step.Step,
			"lambda", step.SafetyLambda,
			"objective", step.Result.Objective,
			"min_margin", step.MinMargin,
			"status", step.Result.Report.Status,
		)

		if trace != nil {
			trace.Write(store.TraceEntry{
				Step:         step.Step,
				SafetyLambda: step.SafetyLambda,
				Objective:    step.Result.Objective,
				MinMargin:    step.MinMargin,
				Status:       string(step.Result.Report.Status),
				Converged:    step.Result.Converged,
				Timestamp:    time.Now(),
				X:            step.Result.X,
			})
		}
		if checkpoints != nil {
			checkpoints.SaveCheckpoint(runID, store.NewCheckpoint(
				runID,
				step.Result.X,
				step.Result.Objective,
				step.SafetyLambda,
				step.MinMargin,
				string(step.Result.Report.Status),
				step.Step,
				config,
			))
		}
	}

	result, err := problem.Reflect(p, problem.ReflectOptions{
		SafetyLambda:  startLambda,
		X0:            resumeX,
		MaxSteps:      reflectSteps,
		ExploreFirst:  reflectExplore,
		Exploration:   reflectExploration,
		Seed:          reflectSeed,
		MaxIterations: reflectIters,
	}, observe)
	if err != nil {
		return fmt.Errorf("reflection failed: %w", err)
	}

	if trace != nil {
		trace.Flush()
	}

	fmt.Printf("Run:          %s\n", runID)
	fmt.Printf("Steps:        %d (loop converged: %v)\n", result.Steps, result.Converged)
	fmt.Printf("Final lambda: %.6g\n", result.SafetyLambda)
	fmt.Printf("Best x:       %s\n", formatVector(result.Final.X))
	fmt.Printf("Objective:    %.6g\n", result.Final.Objective)
	fmt.Printf("Status:       %s\n", result.Final.Report.Status)

	return nil
}
