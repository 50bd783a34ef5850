package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
)

func newSHA256() hash.Hash { return sha256.New() }

const keyLength = 32

// GenerateKey returns a new cryptographically secure 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// deriveKey combines appKey and workspaceKey via HKDF-SHA256 into a single
// AES-256 key, giving tenant isolation without a separate key per tenant.
func deriveKey(appKey, workspaceKey []byte) ([]byte, error) {
	if len(appKey) != keyLength {
		return nil, ErrInvalidAppKey
	}
	if len(workspaceKey) != keyLength {
		return nil, ErrInvalidWorkspaceKey
	}

	reader := hkdf.New(newSHA256, appKey, workspaceKey, []byte("authguard/pkg/secrets"))
	derived := make([]byte, keyLength)
	if _, err := io.ReadFull(reader, derived); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	return derived, nil
}

func newAEAD(appKey, workspaceKey []byte) (cipher.AEAD, error) {
	derived, err := deriveKey(appKey, workspaceKey)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	return cipher.NewGCM(block)
}

// EncryptBytes encrypts plaintext under the compound key derived from
// appKey and workspaceKey, returning nonce||ciphertext||tag.
func EncryptBytes(appKey, workspaceKey, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(appKey, workspaceKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptBytes reverses EncryptBytes.
func DecryptBytes(appKey, workspaceKey, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(appKey, workspaceKey)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrInvalidCiphertext
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// EncryptString encrypts plaintext and returns it base64-encoded.
func EncryptString(appKey, workspaceKey []byte, plaintext string) (string, error) {
	ciphertext, err := EncryptBytes(appKey, workspaceKey, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString.
func DecryptString(appKey, workspaceKey []byte, encoded string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	plaintext, err := DecryptBytes(appKey, workspaceKey, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
