// Package remote implements the remote-execution harness: it rents a
// GPU pod matching a machine spec, ships a Python function and its
// arguments to the pod, executes it inside a disposable virtual
// environment, brings the result back and releases everything it
// acquired. The caller sees only the function's return value or an
// error, as if the call had run locally.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
)

// Fixed on-pod paths. The pod is exclusively owned by one run, so
// well-known paths are safe.
const (
	remoteScriptPath   = "/tmp/volt_runner.py"
	remoteArtifactPath = "/tmp/result.json"
)

// Resource is one rentable machine as listed by the fleet, in provider
// ranking order.
type Resource struct {
	ID   string
	Name string // descriptive name, e.g. "NVIDIA A100-SXM4-80GB"
}

// HandleState tracks the lifecycle of an allocated pod.
type HandleState int

const (
	StateProvisioning HandleState = iota
	StateReady
	StateFailed
	StateReleased
)

func (s HandleState) String() string {
	switch s {
	case StateProvisioning:
		return "provisioning"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Handle identifies an allocated pod. A handle belongs to exactly one
// run; handles are never pooled or shared.
type Handle struct {
	PodID string
	Name  string
	Host  string
	Port  int
	User  string

	state HandleState
}

// State returns the handle's current lifecycle state.
func (h *Handle) State() HandleState { return h.state }

// transition advances the handle state. Transitions are monotonic:
// provisioning->ready->released, with failed as a terminal state
// reachable from provisioning or ready.
func (h *Handle) transition(to HandleState) error {
	ok := false
	switch to {
	case StateReady:
		ok = h.state == StateProvisioning
	case StateFailed:
		ok = h.state == StateProvisioning || h.state == StateReady
	case StateReleased:
		ok = h.state == StateReady
	}
	if !ok {
		return fmt.Errorf("invalid handle transition %s -> %s", h.state, to)
	}
	h.state = to
	return nil
}

// ExecResult is the outcome of one remote command: Success reflects the
// exit status, Stdout/Stderr the captured streams. A command that ran
// and failed is not a transport error.
type ExecResult struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Fleet lists, allocates and releases pods. Implemented by the REST
// client adapter; mocked in tests.
type Fleet interface {
	// List returns rentable machines in provider ranking order.
	List(ctx context.Context) ([]Resource, error)
	// Allocate rents a machine and returns a handle in the
	// provisioning state. The pod bills until released.
	Allocate(ctx context.Context, resourceID, name, templateID string) (*Handle, error)
	// Describe refreshes readiness and SSH coordinates for a pod.
	Describe(ctx context.Context, podID string) (ready bool, host string, port int, user string, err error)
	// Release returns the pod. Releasing an already-released pod is
	// not an error.
	Release(ctx context.Context, h *Handle) error
}

// Session executes commands and transfers files on an allocated pod.
type Session interface {
	Exec(ctx context.Context, h *Handle, command string) (ExecResult, error)
	Upload(ctx context.Context, h *Handle, localPath, remotePath string) error
	Download(ctx context.Context, h *Handle, remotePath, localPath string) error
}

// RunSpec describes one remote invocation.
type RunSpec struct {
	// Machine is matched case-insensitively as a substring against
	// machine names, e.g. "A100" or "1xH200".
	Machine string
	// TemplateID selects the base image; empty means the platform
	// default.
	TemplateID string
	// Task is the function to execute.
	Task Task
	// Args and Kwargs must be literal-representable values (nil,
	// bools, numbers, strings, slices, string-keyed maps).
	Args   []any
	Kwargs map[string]any
	// Requirements are pip-installable packages for the run.
	Requirements []string
	// KeepPod leaves the pod running after the run instead of
	// releasing it.
	KeepPod bool
}

// artifact is the structured outcome the generated script writes on the
// pod. It is produced only by the script itself, never by the harness.
type artifact struct {
	Success   bool            `json:"success"`
	Result    json.RawMessage `json:"result"`
	Error     string          `json:"error"`
	Traceback string          `json:"traceback"`
}
