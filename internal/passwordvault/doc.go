// Package passwordvault hashes and verifies passwords with argon2id, a
// memory- and CPU-hard one-way function, concatenating a process-wide
// pepper before hashing. golang.org/x/crypto/argon2 is used directly: no
// pack example wires a higher-level password-hashing library, and argon2 is
// already a direct dependency of the teacher module.
package passwordvault
