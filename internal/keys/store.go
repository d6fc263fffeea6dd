// Package keys reads the key material the bootstrap tool generates for
// each network: per-node, per-user, and faucet directories holding a
// public_key_hex file and a secret_key.pem. It also derives the on-chain
// account hash from a public key.
package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmcph/netview/internal/netctx"
)

// ErrNotFound reports that no key material exists for the requested
// account.
var ErrNotFound = errors.New("key material not found")

// File names inside every account's key directory.
const (
	publicKeyHexFile = "public_key_hex"
	secretKeyFile    = "secret_key.pem"
)

// Store reads key material for one network's accounts.
type Store struct {
	net *netctx.Network
}

// NewStore returns a Store over the given network's asset directory.
func NewStore(net *netctx.Network) *Store {
	return &Store{net: net}
}

// Dir returns the key directory for an account. The path is derived from
// the network's account-path template for the kind; node and user
// templates take the ordinal, the faucet template does not.
func (s *Store) Dir(kind netctx.AccountKind, ordinal int) (string, error) {
	tmpl, ok := s.net.AccountPaths[kind]
	if !ok {
		return "", fmt.Errorf("no account path template for kind %q", kind)
	}

	rel := tmpl
	if strings.Contains(tmpl, "%d") {
		rel = fmt.Sprintf(tmpl, ordinal)
	}
	return filepath.Join(s.net.Dir, rel), nil
}

// SecretKeyPath returns the path of the account's secret key file.
// Returns ErrNotFound when the file does not exist on disk.
func (s *Store) SecretKeyPath(kind netctx.AccountKind, ordinal int) (string, error) {
	dir, err := s.Dir(kind, ordinal)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, secretKeyFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s #%d: %w (%s)", kind, ordinal, ErrNotFound, path)
		}
		return "", fmt.Errorf("%s #%d: stat secret key: %w", kind, ordinal, err)
	}
	return path, nil
}

// PublicKeyHex reads the account's hex-encoded public key, including its
// one-byte algorithm tag.
func (s *Store) PublicKeyHex(kind netctx.AccountKind, ordinal int) (string, error) {
	dir, err := s.Dir(kind, ordinal)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, publicKeyHexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s #%d: %w (%s)", kind, ordinal, ErrNotFound, path)
		}
		return "", fmt.Errorf("%s #%d: read public key: %w", kind, ordinal, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// AccountHash reads the account's public key and derives its account hash.
func (s *Store) AccountHash(kind netctx.AccountKind, ordinal int) (string, error) {
	pub, err := s.PublicKeyHex(kind, ordinal)
	if err != nil {
		return "", err
	}

	hash, err := AccountHashFromHex(pub)
	if err != nil {
		return "", fmt.Errorf("%s #%d: %w", kind, ordinal, err)
	}
	return hash, nil
}
