package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/aretw0/lattice/internal/task"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the declared tasks",
	Long:  `Prints the tasks declared in the taskfile with their commands and descriptions.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")

		set, err := task.Load(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, tui.Errorf("Error: %v", err))
			os.Exit(task.ExitUsage)
		}

		render := tui.NewRenderer()
		out, err := render(tui.TaskTable(set))
		if err != nil {
			// Rendering is cosmetic; fall back to the raw table.
			out = tui.TaskTable(set)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
