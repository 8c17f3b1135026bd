package user

// PasswordHasher hashes and verifies plain-text passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) error
}
