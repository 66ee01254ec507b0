package bcrypt

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

// GenerateSalt returns a salt string for the given cost and version, built
// from 16 bytes of crypto/rand output:
//
//	$2b$10$<22 characters>
func GenerateSalt(cost int, v Version) (string, error) {
	return generateSalt(rand.Reader, cost, v)
}

func generateSalt(r io.Reader, cost int, v Version) (string, error) {
	if err := checkCost(cost); err != nil {
		return "", err
	}
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, string(v))
	}
	if r == nil {
		return "", ErrMissingRandomSource
	}
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(r, salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingRandomSource, err)
	}
	return FormatSalt(v, cost, salt)
}

// Hash hashes password with the version, cost and salt taken from salt,
// which may be a salt string or a complete hash (its salt prefix is used).
//
// The returned hash always carries the canonical salt encoding, so a salt
// string with non-zero spare bits in its last character comes back with
// those bits cleared.
func Hash(password []byte, salt string) (string, error) {
	if salt == "" {
		return "", fmt.Errorf("%w: salt", ErrEmptyInput)
	}
	p, err := Parse(salt)
	if err != nil {
		return "", err
	}
	digest, err := compute(password, p)
	if err != nil {
		return "", err
	}
	return FormatHash(p.SaltString(), digest)
}

// HashWithCost hashes password under a freshly generated [DefaultVersion]
// salt of the given cost.
func HashWithCost(password []byte, cost int) (string, error) {
	salt, err := GenerateSalt(cost, DefaultVersion)
	if err != nil {
		return "", err
	}
	return Hash(password, salt)
}

// Compare reports whether password hashes to hash. A malformed or empty hash
// never matches; Compare has no error path, so hostile input cannot make it
// fail in any other way.
//
// The digests are compared in constant time.
func Compare(password []byte, hash string) bool {
	ok, _ := compareHash(password, hash)
	return ok
}

// GetRounds returns the cost recorded in hash.
func GetRounds(hash string) (int, error) {
	p, err := Parse(hash)
	if err != nil {
		return 0, err
	}
	return p.Cost, nil
}

// compareHash is Compare with the parse failure kept.
func compareHash(password []byte, hash string) (bool, error) {
	p, err := Parse(hash)
	if err != nil {
		return false, err
	}
	if p.Digest == nil {
		return false, fmt.Errorf("%w: salt string has no digest", ErrInvalidFormat)
	}
	digest, err := compute(password, p)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(digest[:digestLen], p.Digest) == 1, nil
}

// compute runs the key schedule and returns the 24 byte digest.
func compute(password []byte, p *Parsed) ([]byte, error) {
	c, err := eksSetup(password, p.Salt, p.Cost, p.Version)
	if err != nil {
		return nil, err
	}
	return digest(c), nil
}
