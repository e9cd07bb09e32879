package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Chris4081/maat-core/internal/maat"
	"github.com/Chris4081/maat-core/internal/problem"
)

var (
	solveProblem     string
	solveFile        string
	solveLambda      float64
	solveGlobal      bool
	solveExploration float64
	solveSeed        int64
	solveIters       int
	solveX0          string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run a single constrained search",
	Long: `Runs one seek on a built-in or YAML-defined problem and prints the
best point together with the field and constraint reports.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveProblem, "problem", "", "Built-in problem name (see 'maat problems')")
	solveCmd.Flags().StringVar(&solveFile, "file", "", "YAML linear problem file")
	solveCmd.Flags().Float64Var(&solveLambda, "lambda", 0, "Safety penalty strength (0 = problem default)")
	solveCmd.Flags().BoolVar(&solveGlobal, "global", false, "Use global stochastic search")
	solveCmd.Flags().Float64Var(&solveExploration, "exploration", 0.5, "Exploration strength for global search, in [0,1]")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 42, "Random seed for global search")
	solveCmd.Flags().IntVar(&solveIters, "iters", 1000, "Max solver iterations")
	solveCmd.Flags().StringVar(&solveX0, "x0", "", "Starting point, comma-separated (default: problem's)")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, err := resolveProblem(solveProblem, solveFile)
	if err != nil {
		return err
	}

	x0, err := parseVector(solveX0)
	if err != nil {
		return err
	}

	slog.Info("Starting search", "problem", p.Name, "global", solveGlobal, "iters", solveIters)

	start := time.Now()
	res, err := p.Seek(x0, maat.SeekOptions{
		SafetyLambda:  solveLambda,
		UseGlobal:     solveGlobal,
		Exploration:   solveExploration,
		Seed:          solveSeed,
		MaxIterations: solveIters,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	elapsed := time.Since(start)

	slog.Info("Search complete",
		"elapsed", elapsed,
		"objective", res.Objective,
		"converged", res.Converged,
		"status", res.Report.Status,
	)

	fmt.Printf("Problem:   %s\n", p.Name)
	fmt.Printf("Best x:    %s\n", formatVector(res.X))
	fmt.Printf("Objective: %.6g\n", res.Objective)
	fmt.Printf("Converged: %v\n", res.Converged)

	fmt.Println("\nFields:")
	for _, f := range p.FieldReport(res.X) {
		fmt.Printf("  %-20s raw=%.6g weighted=%.6g\n", f.Name, f.Raw, f.Weighted)
	}

	fmt.Printf("\nConstraints (%s):\n", res.Report.Status)
	for _, c := range res.Report.Entries {
		mark := "OK"
		if !c.Satisfied {
			mark = "VIOLATED"
		}
		fmt.Printf("  %-20s margin=%.6g %s\n", c.Name, c.Margin, mark)
		if c.Hint != "" {
			fmt.Printf("    hint: %s\n", c.Hint)
		}
	}

	return nil
}

// resolveProblem picks a built-in by name or loads a YAML linear problem.
func resolveProblem(name, file string) (*problem.Problem, error) {
	switch {
	case name != "" && file != "":
		return nil, fmt.Errorf("--problem and --file are mutually exclusive")
	case name != "":
		return problem.Get(name)
	case file != "":
		return problem.LoadLinear(file)
	default:
		return nil, fmt.Errorf("one of --problem or --file is required")
	}
}

func parseVector(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x0 component %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func formatVector(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
