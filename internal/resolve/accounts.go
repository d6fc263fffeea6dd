package resolve

import (
	"fmt"

	"github.com/tmcph/netview/internal/netctx"
)

// checkAccount validates an account ordinal against the network's count
// for the kind. The faucet is ordinal-less and always in range.
func (r *Resolver) checkAccount(kind netctx.AccountKind, ordinal int) error {
	if kind == netctx.KindFaucet {
		return nil
	}

	count := r.net.Count(kind)
	if ordinal < 1 || ordinal > count {
		return fmt.Errorf("%s #%d: %w (network #%d has %d %ss)",
			kind, ordinal, ErrOutOfRange, r.net.Ordinal, count, kind)
	}
	return nil
}

// AccountHash resolves the account hash for (kind, ordinal), derived from
// the account's generated public key.
func (r *Resolver) AccountHash(kind netctx.AccountKind, ordinal int) (string, error) {
	if err := r.checkAccount(kind, ordinal); err != nil {
		return "", err
	}
	return r.store.AccountHash(kind, ordinal)
}

// SecretKeyPath resolves the secret-key file path for (kind, ordinal).
func (r *Resolver) SecretKeyPath(kind netctx.AccountKind, ordinal int) (string, error) {
	if err := r.checkAccount(kind, ordinal); err != nil {
		return "", err
	}
	return r.store.SecretKeyPath(kind, ordinal)
}
