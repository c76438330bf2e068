package tui

import (
	"testing"

	"github.com/aretw0/lattice/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskTable(t *testing.T) {
	set, err := task.NewSet(task.File{
		Default: "run",
		Tasks: []task.Task{
			{Name: "run", Command: "go", Args: []string{"run", "./cmd/scoringd"}, Description: "Start the server"},
			{Name: "lint", Command: "golangci-lint", Args: []string{"run"}},
		},
	})
	require.NoError(t, err)

	table := TaskTable(set)
	assert.Contains(t, table, "| Task | Command | Description |")
	assert.Contains(t, table, "`run` (default)")
	assert.Contains(t, table, "`go run ./cmd/scoringd`")
	assert.Contains(t, table, "`lint`")
	assert.NotContains(t, table, "`lint` (default)")
}
