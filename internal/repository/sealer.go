package repository

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	sealPrefix = "sealed:v1:"
	sealSalt   = "chemviz.credential.v1"
	nonceSize  = 24
)

var ErrSealBroken = errors.New("sealed credential cannot be opened")

// Sealer encrypts the stored credential with secretbox. A nil *Sealer is a
// pass-through.
type Sealer struct {
	key [32]byte
}

// NewSealer derives a key from secret. It returns nil for an empty secret.
func NewSealer(secret string) *Sealer {
	if secret == "" {
		return nil
	}
	s := &Sealer{}
	copy(s.key[:], argon2.IDKey([]byte(secret), []byte(sealSalt), 1, 64*1024, 4, 32))
	return s
}

func (s *Sealer) Seal(plain string) (string, error) {
	if s == nil {
		return plain, nil
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return sealPrefix + base64.RawStdEncoding.EncodeToString(box), nil
}

// Open reverses Seal. Values stored before a secret was configured are
// returned unchanged.
func (s *Sealer) Open(stored string) (string, error) {
	if !strings.HasPrefix(stored, sealPrefix) {
		return stored, nil
	}
	if s == nil {
		return "", ErrSealBroken
	}
	box, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(stored, sealPrefix))
	if err != nil || len(box) < nonceSize {
		return "", ErrSealBroken
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrSealBroken
	}
	return string(plain), nil
}
