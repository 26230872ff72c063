package remote

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockFleet struct {
	mock.Mock
}

func (m *mockFleet) List(ctx context.Context) ([]Resource, error) {
	args := m.Called(ctx)
	var rs []Resource
	if v := args.Get(0); v != nil {
		rs = v.([]Resource)
	}
	return rs, args.Error(1)
}

func (m *mockFleet) Allocate(ctx context.Context, resourceID, name, templateID string) (*Handle, error) {
	args := m.Called(ctx, resourceID, name, templateID)
	var h *Handle
	if v := args.Get(0); v != nil {
		h = v.(*Handle)
	}
	return h, args.Error(1)
}

func (m *mockFleet) Describe(ctx context.Context, podID string) (bool, string, int, string, error) {
	args := m.Called(ctx, podID)
	return args.Bool(0), args.String(1), args.Int(2), args.String(3), args.Error(4)
}

func (m *mockFleet) Release(ctx context.Context, h *Handle) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

type mockSession struct {
	mock.Mock
}

func (m *mockSession) Exec(ctx context.Context, h *Handle, command string) (ExecResult, error) {
	args := m.Called(ctx, h, command)
	return args.Get(0).(ExecResult), args.Error(1)
}

func (m *mockSession) Upload(ctx context.Context, h *Handle, localPath, remotePath string) error {
	args := m.Called(ctx, h, localPath, remotePath)
	return args.Error(0)
}

func (m *mockSession) Download(ctx context.Context, h *Handle, remotePath, localPath string) error {
	args := m.Called(ctx, h, remotePath, localPath)
	return args.Error(0)
}
