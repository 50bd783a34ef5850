// Package keyring holds the set of RSA signing keys used to mint and verify
// bearer tokens. Exactly one key is active-signing at any moment; retired
// and verify-only keys stay available so tokens minted under them keep
// validating through the remainder of their lifetime.
//
// Key material is generated in-process (crypto/rsa) and held only in
// memory; no pack example wires an external KMS/HSM for this, so the
// standard library is the grounded choice here. A production deployment
// would persist the private material alongside a restart-recovery path;
// that persistence format is outside this package's scope (see
// Ring.ExportState / Ring.ImportState).
package keyring
