package remote

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
)

// Task is a named Python function shipped to the pod. Source holds the
// full function definition; leading decorator lines are stripped during
// packaging.
type Task struct {
	Name   string
	Source string
}

// TaskFromFile extracts the named top-level function from a Python
// source file. The extracted block runs from the def line to the last
// line belonging to the function body; decorator lines directly above
// the def are included and stripped later by the packager.
func TaskFromFile(path, name string) (Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Task{}, fmt.Errorf("reading %s: %w", path, err)
	}

	defLine := regexp.MustCompile(`^def\s+` + regexp.QuoteMeta(name) + `\s*\(`)
	lines := strings.Split(string(data), "\n")

	defIdx := -1
	for i, line := range lines {
		if defLine.MatchString(line) {
			defIdx = i
			break
		}
	}
	if defIdx == -1 {
		return Task{}, fmt.Errorf("function %q not found in %s", name, path)
	}

	// Include decorator lines immediately above the def.
	start := defIdx
	for start > 0 && strings.HasPrefix(strings.TrimSpace(lines[start-1]), "@") {
		start--
	}

	// The body ends at the next non-blank column-zero line after the def.
	end := len(lines)
	for i := defIdx + 1; i < len(lines); i++ {
		if !isIndentedOrBlank(lines[i]) {
			end = i
			break
		}
	}

	block := strings.TrimRight(strings.Join(lines[start:end], "\n"), "\n")
	return Task{Name: name, Source: block}, nil
}

func isIndentedOrBlank(line string) bool {
	return line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// registry holds pre-registered named tasks. A compiled binary cannot
// capture its own function source, so remote-callable work is declared
// up front instead.
var registry = struct {
	sync.RWMutex
	tasks map[string]Task
}{tasks: make(map[string]Task)}

// Register adds a task to the process-local registry. Re-registering a
// name replaces the previous task.
func Register(task Task) error {
	if task.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if !strings.Contains(task.Source, "def ") {
		return fmt.Errorf("task %q source contains no function definition", task.Name)
	}
	registry.Lock()
	defer registry.Unlock()
	registry.tasks[task.Name] = task
	return nil
}

// Lookup returns a registered task by name.
func Lookup(name string) (Task, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.tasks[name]
	return t, ok
}
