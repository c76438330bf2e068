package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/aretw0/lattice/internal/task"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lattice [task]",
	Short: "Lattice is a task runner for the scoring project",
	Long: `Lattice maps short task names (run, test, lint, format, vet) to external
commands declared in tasks.yaml and propagates the wrapped tool's exit
status unchanged. With no task name, the default task is executed.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		os.Exit(runTask(cmd, name))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(task.ExitUsage)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "tasks.yaml", "Taskfile declaring the available tasks")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// runTask executes a single declared task and returns the exit status the
// process should terminate with.
func runTask(cmd *cobra.Command, name string) int {
	file, _ := cmd.Flags().GetString("file")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	set, err := task.Load(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.Errorf("Error: %v", err))
		return task.ExitUsage
	}

	// SIGINT/SIGTERM cancel the context; CommandContext kills the child.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := task.NewRunner(set, task.WithLogger(logger))
	code, err := runner.Run(ctx, name)
	if err != nil {
		if errors.Is(err, task.ErrUnknownTask) {
			fmt.Fprintln(os.Stderr, tui.Errorf("Error: %v", err))
			fmt.Fprintf(os.Stderr, "Available tasks: %s\n", strings.Join(set.Names(), ", "))
		} else {
			fmt.Fprintln(os.Stderr, tui.Errorf("Error: %v", err))
		}
		return code
	}
	return code
}
