// Package sshkey provides helpers for reading and fingerprinting SSH
// public keys before they are registered with the API.
package sshkey

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Fingerprint returns the SHA-256 fingerprint of an authorized-keys
// formatted public key line.
func Fingerprint(publicKey string) (string, error) {
	key, _, _, _, err := ssh.ParseAuthorizedKey([]byte(strings.TrimSpace(publicKey)))
	if err != nil {
		return "", fmt.Errorf("invalid public key: %w", err)
	}
	return ssh.FingerprintSHA256(key), nil
}

// ReadPublicKey reads and validates a public key file, returning the
// first key line it contains.
func ReadPublicKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := Fingerprint(line); err != nil {
			return "", err
		}
		return line, nil
	}
	return "", fmt.Errorf("no public key found in %s", path)
}
