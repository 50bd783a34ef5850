package secrets

import "errors"

var (
	ErrInvalidAppKey       = errors.New("app key must be 32 bytes")
	ErrInvalidWorkspaceKey = errors.New("workspace key must be 32 bytes")
	ErrKeyDerivationFailed = errors.New("key derivation failed")
	ErrEncryptionFailed    = errors.New("encryption failed")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrInvalidCiphertext   = errors.New("ciphertext is invalid or corrupted")
)
