package contract

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	// HashString hashes long opaque strings such as session tokens.
	HashString(s string) string
	CheckHash(s, hash string) bool
}
