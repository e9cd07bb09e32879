package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chris4081/maat-core/internal/problem"
	"github.com/Chris4081/maat-core/internal/store"
)

var runsDataDir string

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List the built-in problems",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range problem.Names() {
			p, err := problem.Get(name)
			if err != nil {
				continue
			}
			fmt.Printf("%-12s %s\n", name, p.Description)
		}
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect persisted reflection runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored run checkpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		fsStore, err := store.NewFSStore(runsDataDir)
		if err != nil {
			return err
		}

		infos, err := fsStore.ListCheckpoints()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(infos) == 0 {
			fmt.Println("No stored runs.")
			return nil
		}

		for _, info := range infos {
			fmt.Printf("%s  problem=%s  step=%d  objective=%.6g  lambda=%.3g  %s  %s\n",
				info.RunID, info.Problem, info.Step, info.Objective,
				info.SafetyLambda, info.Status, info.Timestamp.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fsStore, err := store.NewFSStore(runsDataDir)
		if err != nil {
			return err
		}

		if err := fsStore.DeleteCheckpoint(args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("run not found: %s", args[0])
			}
			return fmt.Errorf("failed to delete run: %w", err)
		}

		fmt.Printf("Deleted run %s\n", args[0])
		return nil
	},
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDataDir, "data", "./data", "Data directory")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsDeleteCmd)

	rootCmd.AddCommand(problemsCmd)
	rootCmd.AddCommand(runsCmd)
}
