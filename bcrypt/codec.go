package bcrypt

import (
	"fmt"
	"strconv"
)

const (
	// prefixLen covers "$2b$10$".
	prefixLen = 7
	// encodedSaltLen is the salt length in characters.
	encodedSaltLen = 22
	// encodedDigestLen is the digest length in characters.
	encodedDigestLen = 31

	// SaltStringLen is the length of a salt string produced by GenerateSalt.
	SaltStringLen = prefixLen + encodedSaltLen
	// HashLen is the length of every hash string.
	HashLen = SaltStringLen + encodedDigestLen
)

// Parsed holds the fields of a salt or hash string.
type Parsed struct {
	Version Version
	Cost    int
	// Salt is always 16 bytes.
	Salt []byte
	// Digest is 23 bytes, or nil when the input was a bare salt.
	Digest []byte
}

// FormatSalt renders "$<version>$<cost>$<22 salt characters>".
func FormatSalt(v Version, cost int, salt []byte) (string, error) {
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, string(v))
	}
	if err := checkCost(cost); err != nil {
		return "", err
	}
	if len(salt) != saltLen {
		return "", fmt.Errorf("%w: salt is %d bytes, want %d", ErrInvalidSaltLength, len(salt), saltLen)
	}

	buf := make([]byte, 0, SaltStringLen)
	buf = append(buf, '$')
	buf = append(buf, string(v)...)
	buf = append(buf, '$', byte('0'+cost/10), byte('0'+cost%10), '$')
	buf = append(buf, encodeBase64(salt)[:encodedSaltLen]...)
	return string(buf), nil
}

// FormatHash appends the encoded digest to a salt string. Only the first 23
// digest bytes are representable; any further bytes are ignored.
func FormatHash(salt string, digest []byte) (string, error) {
	if len(salt) != SaltStringLen {
		return "", fmt.Errorf("%w: salt string is %d characters, want %d", ErrInvalidFormat, len(salt), SaltStringLen)
	}
	if len(digest) < digestLen {
		return "", fmt.Errorf("%w: digest is %d bytes, want at least %d", ErrInvalidInput, len(digest), digestLen)
	}
	return salt + encodeBase64(digest[:digestLen]), nil
}

// Parse splits a salt string (29 characters) or a hash string (60
// characters) into its fields. The input must match
//
//	\$(2[abxy])\$(\d{2})\$([./A-Za-z0-9]{22})([./A-Za-z0-9]{31})?
//
// in full.
func Parse(s string) (*Parsed, error) {
	if len(s) < prefixLen {
		return nil, fmt.Errorf("%w: %d characters is too short", ErrInvalidFormat, len(s))
	}
	if s[0] != '$' || s[3] != '$' || s[6] != '$' {
		return nil, fmt.Errorf("%w: expected $<version>$<cost>$ prefix", ErrInvalidFormat)
	}

	p := &Parsed{Version: Version(s[1:3])}
	if !p.Version.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidFormat, ErrInvalidVersion, s[1:3])
	}

	if !isDigit(s[4]) || !isDigit(s[5]) {
		return nil, fmt.Errorf("%w: cost %q is not two digits", ErrInvalidFormat, s[4:6])
	}
	p.Cost, _ = strconv.Atoi(s[4:6])
	if err := checkCost(p.Cost); err != nil {
		return nil, err
	}

	rest := s[prefixLen:]
	if len(rest) != encodedSaltLen && len(rest) != encodedSaltLen+encodedDigestLen {
		return nil, fmt.Errorf("%w: %d characters after the prefix, want %d or %d",
			ErrInvalidSaltLength, len(rest), encodedSaltLen, encodedSaltLen+encodedDigestLen)
	}

	salt, err := decodeBase64(rest[:encodedSaltLen])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSaltLength, err)
	}
	p.Salt = salt

	if len(rest) > encodedSaltLen {
		digest, err := decodeBase64(rest[encodedSaltLen:])
		if err != nil {
			return nil, fmt.Errorf("%w: digest: %w", ErrInvalidFormat, err)
		}
		p.Digest = digest
	}
	return p, nil
}

// SaltString re-encodes the version, cost and salt. Spare bits in the last
// salt character come out as zero, so a salt string with non-canonical
// trailing bits is normalised.
func (p *Parsed) SaltString() string {
	s, err := FormatSalt(p.Version, p.Cost, p.Salt)
	if err != nil {
		return ""
	}
	return s
}

// String re-encodes the full hash, or just the salt string when there is no
// digest.
func (p *Parsed) String() string {
	salt := p.SaltString()
	if p.Digest == nil || salt == "" {
		return salt
	}
	h, err := FormatHash(salt, p.Digest)
	if err != nil {
		return salt
	}
	return h
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
