package ports

// PasswordHasher performs one-way hashing and verification of plaintext
// passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
