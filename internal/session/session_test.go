package session

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/remote"
)

func writeTestKey(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestLoadSigner(t *testing.T) {
	signer, err := loadSigner(writeTestKey(t))
	require.NoError(t, err)
	assert.Equal(t, "ssh-ed25519", signer.PublicKey().Type())
}

func TestLoadSignerMissingFile(t *testing.T) {
	_, err := loadSigner(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read ssh key")
}

func TestLoadSignerGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("not a key"), 0o600))

	_, err := loadSigner(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse ssh key")
}

func TestExecDialFailure(t *testing.T) {
	s := NewSSH(writeTestKey(t))
	s.DialTimeout = 100 * time.Millisecond

	// Reserved TEST-NET address, nothing listens there.
	h := &remote.Handle{Host: "192.0.2.1", Port: 22, User: "root"}
	_, err := s.Exec(context.Background(), h, "true")
	require.Error(t, err)
}

func TestExecRespectsContextBeforeDial(t *testing.T) {
	s := NewSSH(writeTestKey(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &remote.Handle{Host: "192.0.2.1", Port: 22, User: "root"}
	_, err := s.Exec(ctx, h, "true")
	require.Error(t, err)
}
