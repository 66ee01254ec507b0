package bcrypt

import "fmt"

// Version identifies the bcrypt revision recorded in a hash prefix.
//
// Version2b is the current revision. Version2a, Version2x and Version2y are
// accepted for compatibility with hashes produced by older or third-party
// implementations; for passwords truncated to 72 bytes they share the same
// key schedule.
type Version string

const (
	// Version2a is the original OpenBSD revision that added the NUL
	// terminator to the key.
	Version2a Version = "2a"
	// Version2b is the current revision.
	Version2b Version = "2b"
	// Version2x marks hashes flagged by crypt_blowfish as produced by its
	// sign-extension bug.
	Version2x Version = "2x"
	// Version2y is crypt_blowfish's name for the corrected algorithm.
	Version2y Version = "2y"
)

const (
	// MinCost is the smallest accepted cost factor.
	MinCost = 4
	// MaxCost is the largest accepted cost factor.
	MaxCost = 31
	// DefaultCost is the cost used by [GenerateSalt] callers that have no
	// preference, matching the historical default of 10.
	DefaultCost = 10
	// DefaultVersion is the version written into newly generated salts.
	DefaultVersion = Version2b
)

// Valid reports whether v is one of the four known revisions.
func (v Version) Valid() bool {
	switch v {
	case Version2a, Version2b, Version2x, Version2y:
		return true
	}
	return false
}

func (v Version) String() string { return string(v) }

// ParseVersion accepts either the full token ("2b") or the minor letter
// alone ("b"). An empty string selects [DefaultVersion].
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return DefaultVersion, nil
	}
	if len(s) == 1 {
		s = "2" + s
	}
	v := Version(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return v, nil
}

func checkCost(cost int) error {
	if cost < MinCost || cost > MaxCost {
		return fmt.Errorf("%w: %d must be in [%d, %d]", ErrInvalidCost, cost, MinCost, MaxCost)
	}
	return nil
}
