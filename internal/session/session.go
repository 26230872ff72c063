// Package session provides SSH command execution and SFTP file
// transfer against pods allocated by the fleet layer.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/remote"
)

// DefaultDialTimeout bounds the TCP connect to a pod. Freshly started
// pods can take a few seconds to accept connections.
const DefaultDialTimeout = 15 * time.Second

// SSH connects to pods over SSH using a private key. A single SSH
// value is safe for sequential use across multiple pods; each call
// dials a fresh connection.
type SSH struct {
	// KeyPath is the private key used for authentication.
	KeyPath string
	// DialTimeout bounds the TCP connect. Zero means DefaultDialTimeout.
	DialTimeout time.Duration
}

// NewSSH creates a session layer authenticating with the given
// private key file.
func NewSSH(keyPath string) *SSH {
	return &SSH{KeyPath: keyPath}
}

// loadSigner reads and parses the private key.
func loadSigner(keyPath string) (ssh.Signer, error) {
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh key %s: %w", keyPath, err)
	}
	signer, err := ssh.ParsePrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ssh key %s: %w", keyPath, err)
	}
	return signer, nil
}

// dial opens an SSH client connection to the pod behind the handle.
func (s *SSH) dial(ctx context.Context, h *remote.Handle) (*ssh.Client, error) {
	signer, err := loadSigner(s.KeyPath)
	if err != nil {
		return nil, err
	}

	timeout := s.DialTimeout
	if timeout == 0 {
		timeout = DefaultDialTimeout
	}
	config := &ssh.ClientConfig{
		User: h.User,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(signer)},
		// Pods are ephemeral; their host keys are never known in advance.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(h.Host, fmt.Sprintf("%d", h.Port))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}
	return ssh.NewClient(sshConn, chans, reqs), nil
}

// Exec runs a command on the pod and captures its output. A non-zero
// exit status is reported through ExecResult.Success, not through the
// error return; the error covers transport failures only.
func (s *SSH) Exec(ctx context.Context, h *remote.Handle, command string) (remote.ExecResult, error) {
	client, err := s.dial(ctx, h)
	if err != nil {
		return remote.ExecResult{}, err
	}
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		return remote.ExecResult{}, fmt.Errorf("failed to open ssh session: %w", err)
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- sess.Run(command) }()

	select {
	case <-ctx.Done():
		sess.Close()
		<-done
		return remote.ExecResult{}, ctx.Err()
	case err = <-done:
	}

	result := remote.ExecResult{
		Success: err == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}
	if err != nil {
		var exitErr *ssh.ExitError
		if !errors.As(err, &exitErr) {
			return remote.ExecResult{}, fmt.Errorf("remote command failed to run: %w", err)
		}
	}
	return result, nil
}

// Upload copies a local file to the pod over SFTP.
func (s *SSH) Upload(ctx context.Context, h *remote.Handle, localPath, remotePath string) error {
	client, err := s.dial(ctx, h)
	if err != nil {
		return err
	}
	defer client.Close()

	ftp, err := sftp.NewClient(client)
	if err != nil {
		return fmt.Errorf("failed to open sftp session: %w", err)
	}
	defer ftp.Close()

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := ftp.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to upload %s: %w", remotePath, err)
	}
	return nil
}

// Download copies a file from the pod to the local filesystem over SFTP.
func (s *SSH) Download(ctx context.Context, h *remote.Handle, remotePath, localPath string) error {
	client, err := s.dial(ctx, h)
	if err != nil {
		return err
	}
	defer client.Close()

	ftp, err := sftp.NewClient(client)
	if err != nil {
		return fmt.Errorf("failed to open sftp session: %w", err)
	}
	defer ftp.Close()

	src, err := ftp.Open(remotePath)
	if err != nil {
		return fmt.Errorf("failed to open remote file %s: %w", remotePath, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to download %s: %w", remotePath, err)
	}
	return nil
}
