package remote

import (
	"fmt"
	"strings"
	"time"
)

// ResourceNotFoundError means no listed machine matched the requested
// machine spec. Nothing was provisioned.
type ResourceNotFoundError struct {
	Machine string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("no machine found matching spec: %s", e.Machine)
}

// ProvisionError means pod allocation itself failed.
type ProvisionError struct {
	Err error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning pod: %v", e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// ProvisionTimeoutError means the pod was allocated but did not become
// ready within the timeout. The pod may still exist and is torn down.
type ProvisionTimeoutError struct {
	Name    string
	Timeout time.Duration
}

func (e *ProvisionTimeoutError) Error() string {
	return fmt.Sprintf("pod %s failed to start within %s", e.Name, e.Timeout)
}

// DependencyInstallError means pip failed to install the requested
// requirements into the isolated environment.
type DependencyInstallError struct {
	Requirements []string
	Output       string
}

func (e *DependencyInstallError) Error() string {
	return fmt.Sprintf("failed installing requirements (%s):\n%s",
		strings.Join(e.Requirements, ", "), e.Output)
}

// RemoteExecutionError wraps a classified remote failure: either the
// error the script recorded in its artifact, or the captured output of
// a crash that never produced an artifact.
type RemoteExecutionError struct {
	Message   string
	Traceback string
}

func (e *RemoteExecutionError) Error() string {
	msg := e.Message
	if e.Traceback != "" {
		msg = fmt.Sprintf("%s\n\nTraceback:\n%s", msg, e.Traceback)
	}
	return "remote execution failed:\n" + msg
}
