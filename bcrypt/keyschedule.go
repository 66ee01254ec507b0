package bcrypt

import (
	"fmt"

	"golang.org/x/crypto/blowfish"
)

const (
	// saltLen is the raw salt size in bytes.
	saltLen = 16
	// maxKeyLen is the number of key bytes the P-array can absorb.
	maxKeyLen = 72
)

// normalizeKey returns the bytes the key schedule cycles over: the
// password with its NUL terminator, cut to maxKeyLen. Anything beyond that
// never reaches the P-array.
//
// Version 2a kept the key length (terminator included) in a single byte, so
// passwords of 255 bytes or more wrap around to a short key. Hashes created
// that way only verify if the wrap is reproduced; 2b and later cap the
// length instead.
func normalizeKey(password []byte, v Version) []byte {
	n := len(password) + 1
	if v == Version2a {
		n = int(uint8(n))
		if n == 0 {
			// A zero length re-reads the first byte for the whole stream.
			n = 1
		}
	}
	n = min(n, maxKeyLen)
	key := make([]byte, n)
	copy(key, password)
	return key
}

// eksSetup derives the cipher state for password and salt at the given
// cost. The version only selects how the password is turned into key bytes;
// the schedule itself is the same for every version.
//
// The 2^cost loop below is the entire price of bcrypt. Each iteration
// depends on the previous one.
func eksSetup(password, salt []byte, cost int, v Version) (*blowfish.Cipher, error) {
	if err := checkCost(cost); err != nil {
		return nil, err
	}
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, string(v))
	}
	if len(salt) != saltLen {
		return nil, fmt.Errorf("%w: salt length %d, want %d", ErrInvalidInput, len(salt), saltLen)
	}

	key := normalizeKey(password, v)
	c, err := blowfish.NewSaltedCipher(key, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rounds := uint64(1) << uint(cost)
	for i := uint64(0); i < rounds; i++ {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(salt, c)
	}
	return c, nil
}
