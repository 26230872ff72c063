package remote

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/logger"
)

func newTestEnvBuilder(session Session) *EnvBuilder {
	return &EnvBuilder{
		session: session,
		log:     logger.NewWriter(io.Discard, slog.LevelError),
	}
}

func TestEnvBuilder_NamesUniqueAcrossBuilds(t *testing.T) {
	session := new(mockSession)
	var commands []string
	session.On("Exec", mock.Anything, mock.Anything, commandWith("-m venv")).
		Run(func(args mock.Arguments) { commands = append(commands, args.String(2)) }).
		Return(ExecResult{Success: true}, nil)

	builder := newTestEnvBuilder(session)
	h := &Handle{PodID: "pod-1"}

	first, err := builder.Build(context.Background(), h, nil)
	require.NoError(t, err)
	second, err := builder.Build(context.Background(), h, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "/tmp/volt_venv_"), "unexpected path: %s", first)
	assert.True(t, strings.HasPrefix(second, "/tmp/volt_venv_"), "unexpected path: %s", second)

	require.Len(t, commands, 2)
	assert.NotEqual(t, commands[0], commands[1])
}

func TestEnvBuilder_SinglePipInvocationForAllRequirements(t *testing.T) {
	session := new(mockSession)
	session.On("Exec", mock.Anything, mock.Anything, commandWith("-m venv")).
		Return(ExecResult{Success: true}, nil)

	var pipCmd string
	session.On("Exec", mock.Anything, mock.Anything, commandWith("pip install")).
		Run(func(args mock.Arguments) { pipCmd = args.String(2) }).
		Return(ExecResult{Success: true}, nil).
		Once()

	_, err := newTestEnvBuilder(session).Build(context.Background(), &Handle{PodID: "pod-1"},
		[]string{"torch", "numpy==1.26.0", ""})
	require.NoError(t, err)

	assert.Contains(t, pipCmd, "'torch'")
	assert.Contains(t, pipCmd, "'numpy==1.26.0'")
	session.AssertNumberOfCalls(t, "Exec", 2)
}

func TestEnvBuilder_NoRequirementsSkipsPip(t *testing.T) {
	session := new(mockSession)
	session.On("Exec", mock.Anything, mock.Anything, commandWith("-m venv")).
		Return(ExecResult{Success: true}, nil)

	_, err := newTestEnvBuilder(session).Build(context.Background(), &Handle{PodID: "pod-1"}, nil)
	require.NoError(t, err)
	session.AssertNumberOfCalls(t, "Exec", 1)
}

func TestEnvBuilder_PipFailureReturnsInstallError(t *testing.T) {
	session := new(mockSession)
	session.On("Exec", mock.Anything, mock.Anything, commandWith("-m venv")).
		Return(ExecResult{Success: true}, nil)
	session.On("Exec", mock.Anything, mock.Anything, commandWith("pip install")).
		Return(ExecResult{Success: false, Stderr: "No matching distribution found for nope==9"}, nil)

	envPath, err := newTestEnvBuilder(session).Build(context.Background(), &Handle{PodID: "pod-1"},
		[]string{"nope==9"})

	var installErr *DependencyInstallError
	require.ErrorAs(t, err, &installErr)
	assert.Contains(t, installErr.Output, "No matching distribution")
	assert.NotEmpty(t, envPath, "path must be surfaced so teardown can remove the venv")
}

func TestEnvBuilder_CreationFailureStillReturnsPath(t *testing.T) {
	session := new(mockSession)
	session.On("Exec", mock.Anything, mock.Anything, commandWith("-m venv")).
		Return(ExecResult{Success: false, Stderr: "python3: command not found"}, nil)

	envPath, err := newTestEnvBuilder(session).Build(context.Background(), &Handle{PodID: "pod-1"}, nil)
	require.Error(t, err)
	assert.NotEmpty(t, envPath)
}
