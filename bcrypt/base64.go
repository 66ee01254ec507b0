package bcrypt

import (
	"encoding/base64"
	"fmt"
)

const alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// bcEncoding packs bits most-significant first like RFC 4648, only with a
// different alphabet and no padding.
var bcEncoding = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)

// alphabetIndex maps a byte to its 6-bit value, or 0xff when it is not part
// of the alphabet.
var alphabetIndex = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}
	return t
}()

// encodeBase64 returns ceil(8*len(src)/6) characters. Spare bits in the
// final character are zero.
func encodeBase64(src []byte) string {
	return bcEncoding.EncodeToString(src)
}

// decodeBase64 reverses encodeBase64. Spare bits in the final character are
// discarded rather than validated, so a 22 character salt always yields 16
// bytes whatever its last character.
func decodeBase64(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if alphabetIndex[s[i]] == 0xff {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, s[i], i)
		}
	}
	if len(s)%4 == 1 {
		return nil, fmt.Errorf("%w: %d characters cannot encode whole bytes", ErrInvalidLength, len(s))
	}
	dst := make([]byte, bcEncoding.DecodedLen(len(s)))
	n, err := bcEncoding.Decode(dst, []byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLength, err)
	}
	return dst[:n], nil
}
