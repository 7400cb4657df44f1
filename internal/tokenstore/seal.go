package tokenstore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	saltLen  = 16
	nonceLen = 24
)

// Argon2id parameters (RFC 9106 low-memory profile scaled down for a CLI).
const (
	argonTime    = 1
	argonMemory  = 19 * 1024
	argonThreads = 2
)

var errSealed = errors.New("tokenstore: cannot open sealed token")

// Sealer encrypts tokens at rest with a key derived from a passphrase.
// Format: base64(salt || nonce || secretbox(token)).
type Sealer struct {
	passphrase []byte
}

// NewSealer returns a Sealer for passphrase, or nil when passphrase is empty.
func NewSealer(passphrase string) *Sealer {
	if passphrase == "" {
		return nil
	}
	return &Sealer{passphrase: []byte(passphrase)}
}

func (s *Sealer) key(salt []byte) *[32]byte {
	var k [32]byte
	copy(k[:], argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, 32))
	return &k
}

// Seal encrypts plain with a fresh salt and nonce.
func (s *Sealer) Seal(plain string) (string, error) {
	buf := make([]byte, saltLen+nonceLen, saltLen+nonceLen+len(plain)+secretbox.Overhead)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	var nonce [nonceLen]byte
	copy(nonce[:], buf[saltLen:])
	out := secretbox.Seal(buf, []byte(plain), &nonce, s.key(buf[:saltLen]))
	return base64.RawStdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. It fails when the data is malformed or was sealed
// with another passphrase.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < saltLen+nonceLen+secretbox.Overhead {
		return "", errSealed
	}
	var nonce [nonceLen]byte
	copy(nonce[:], raw[saltLen:saltLen+nonceLen])
	plain, ok := secretbox.Open(nil, raw[saltLen+nonceLen:], &nonce, s.key(raw[:saltLen]))
	if !ok {
		return "", errSealed
	}
	return string(plain), nil
}
