package bcrypt

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Options configures a [Hasher].
type Options struct {
	// Cost is the work factor (logarithmic).
	// Valid range: [MinCost (4), MaxCost (31)].
	// Default: [DefaultCost] (10).
	Cost int

	// Version is written into every salt the Hasher generates.
	// Default: [DefaultVersion] (2b).
	Version Version

	// Rand supplies salt bytes. Default: crypto/rand.Reader.
	// It must be safe for concurrent use if the Hasher is shared.
	Rand io.Reader
}

// DefaultOptions returns Options with [DefaultCost], [DefaultVersion] and
// crypto/rand.
func DefaultOptions() Options {
	return Options{Cost: DefaultCost, Version: DefaultVersion, Rand: rand.Reader}
}

// Hasher hashes and verifies passwords with a fixed cost and version.
//
// # Thread safety
//
// Hasher is immutable after construction and safe for concurrent use,
// provided its random source is.
type Hasher struct {
	cost    int
	version Version
	rand    io.Reader
}

// Info carries the parameters parsed from a hash string.
type Info struct {
	Version Version
	Cost    int
}

// NewHasher constructs a Hasher. A zero Version or nil Rand falls back to
// the defaults; an out-of-range Cost is rejected with [ErrInvalidCost].
func NewHasher(opts Options) (*Hasher, error) {
	if err := checkCost(opts.Cost); err != nil {
		return nil, err
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if !opts.Version.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, string(opts.Version))
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	return &Hasher{cost: opts.Cost, version: opts.Version, rand: opts.Rand}, nil
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int { return h.cost }

// Version returns the configured version.
func (h *Hasher) Version() Version { return h.version }

// GenerateSalt returns a new salt string using the Hasher's cost, version
// and random source.
func (h *Hasher) GenerateSalt() (string, error) {
	return generateSalt(h.rand, h.cost, h.version)
}

// Make hashes password under a fresh salt. Two calls with the same password
// return different hashes.
//
// Only the first 72 bytes of the password are significant.
func (h *Hasher) Make(password string) (string, error) {
	salt, err := h.GenerateSalt()
	if err != nil {
		return "", err
	}
	return Hash([]byte(password), salt)
}

// Check verifies password against hash.
//
// It returns (true, nil) on a match and (false, nil) on a mismatch. Unlike
// [Compare], a hash that cannot be compared at all is reported:
// (false, ErrEmptyInput) when hash is empty, and (false, err) wrapping
// [ErrInvalidFormat], [ErrInvalidCost] or [ErrInvalidSaltLength] when it is
// malformed.
//
// The hash may carry any version and cost; those of the Hasher are not
// consulted.
func (h *Hasher) Check(password, hash string) (bool, error) {
	if hash == "" {
		return false, fmt.Errorf("%w: hash", ErrEmptyInput)
	}
	ok, err := compareHash([]byte(password), hash)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Info extracts the version and cost of hash without verifying it.
func (h *Hasher) Info(hash string) (Info, error) {
	if hash == "" {
		return Info{}, fmt.Errorf("%w: hash", ErrEmptyInput)
	}
	p, err := Parse(hash)
	if err != nil {
		return Info{}, err
	}
	if p.Digest == nil {
		return Info{}, fmt.Errorf("%w: salt string has no digest", ErrInvalidFormat)
	}
	return Info{Version: p.Version, Cost: p.Cost}, nil
}
