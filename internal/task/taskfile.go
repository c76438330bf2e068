package task

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTaskName is executed when the operator supplies no task name and
// the taskfile does not declare its own default. First rule wins, like make.
const DefaultTaskName = "run"

// Task defines a named external command execution.
type Task struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// File represents the structure of tasks.yaml.
type File struct {
	Default string `yaml:"default" json:"default"`
	Tasks   []Task `yaml:"tasks" json:"tasks"`
}

// Set is the loaded, immutable task registry.
type Set struct {
	defaultName string
	order       []string
	tasks       map[string]Task
}

// Load reads a taskfile and returns the declared task set.
// A missing file is an error here: unlike optional tool configs, the runner
// is useless without its dispatch table.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taskfile: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return NewSet(f)
}

// NewSet builds a Set from an already-parsed File, enforcing the taskfile
// invariants: non-empty unique names, non-empty commands.
func NewSet(f File) (*Set, error) {
	s := &Set{
		defaultName: f.Default,
		tasks:       make(map[string]Task, len(f.Tasks)),
	}

	for _, t := range f.Tasks {
		if t.Name == "" {
			return nil, fmt.Errorf("task with command %q has no name", t.Command)
		}
		if t.Command == "" {
			return nil, fmt.Errorf("task %q has no command", t.Name)
		}
		if _, dup := s.tasks[t.Name]; dup {
			return nil, fmt.Errorf("duplicate task name: %q", t.Name)
		}
		s.tasks[t.Name] = t
		s.order = append(s.order, t.Name)
	}

	if s.defaultName == "" {
		s.defaultName = DefaultTaskName
	}
	if _, ok := s.tasks[s.defaultName]; !ok && f.Default != "" {
		return nil, fmt.Errorf("default task %q is not declared", s.defaultName)
	}

	return s, nil
}

// Get returns the task bound to name.
func (s *Set) Get(name string) (Task, bool) {
	t, ok := s.tasks[name]
	return t, ok
}

// Default returns the name of the task executed when none is given.
func (s *Set) Default() string {
	return s.defaultName
}

// Names returns the task names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of declared tasks.
func (s *Set) Len() int {
	return len(s.order)
}
