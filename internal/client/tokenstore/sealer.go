package tokenstore

import (
	"fmt"

	"github.com/dmitrijs2005/socrates/internal/cryptox"
	"github.com/dmitrijs2005/socrates/internal/filex"
)

var tokenSalt = []byte("socrates/access_token/v1")

// KeyFileSealer seals with a key derived from a random per-install secret
// kept next to the state database.
type KeyFileSealer struct {
	key []byte
}

// NewKeyFileSealer loads the secret at path, creating it on first use.
func NewKeyFileSealer(path string) (*KeyFileSealer, error) {
	secret, err := filex.ReadOrCreate(path, func() ([]byte, error) {
		return cryptox.RandomBytes(cryptox.KeySize)
	})
	if err != nil {
		return nil, fmt.Errorf("token key: %w", err)
	}
	return &KeyFileSealer{key: cryptox.DeriveKey(secret, tokenSalt)}, nil
}

func (k *KeyFileSealer) Seal(plain []byte) ([]byte, error) {
	return cryptox.Seal(plain, k.key)
}

func (k *KeyFileSealer) Open(sealed []byte) ([]byte, error) {
	return cryptox.Open(sealed, k.key)
}
