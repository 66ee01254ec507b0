package bcrypt

import "errors"

// Sentinel errors returned by bcrypt operations.
//
// Errors are wrapped with additional context, so use [errors.Is]:
//
//	_, err := bcrypt.Hash(password, salt)
//	if errors.Is(err, bcrypt.ErrInvalidCost) {
//	    // cost field outside [4, 31]
//	}
//
// Parse failures may match more than one sentinel: a bad version token is
// both [ErrInvalidFormat] and [ErrInvalidVersion].
var (
	// ErrInvalidCost is returned when a cost factor lies outside
	// [MinCost, MaxCost].
	ErrInvalidCost = errors.New("bcrypt: invalid cost")

	// ErrInvalidVersion is returned for a version token other than 2a, 2b,
	// 2x or 2y.
	ErrInvalidVersion = errors.New("bcrypt: invalid version")

	// ErrInvalidFormat is returned when a salt or hash string does not follow
	// the $<version>$<cost>$<salt>[<digest>] grammar.
	ErrInvalidFormat = errors.New("bcrypt: invalid hash format")

	// ErrInvalidSaltLength is returned when the salt segment is not exactly
	// 22 characters of the bcrypt alphabet.
	ErrInvalidSaltLength = errors.New("bcrypt: invalid salt length")

	// ErrInvalidCharacter is returned when encoded data contains a character
	// outside the bcrypt base64 alphabet.
	ErrInvalidCharacter = errors.New("bcrypt: invalid base64 character")

	// ErrInvalidLength is returned when encoded data has a length that no
	// byte sequence can produce.
	ErrInvalidLength = errors.New("bcrypt: invalid base64 length")

	// ErrInvalidInput is returned by the key schedule for a malformed key or
	// a salt that is not 16 bytes.
	ErrInvalidInput = errors.New("bcrypt: invalid input")

	// ErrEmptyInput is returned when a required argument is absent. An empty
	// password is valid input and never triggers this error.
	ErrEmptyInput = errors.New("bcrypt: required argument missing")

	// ErrMissingRandomSource is returned when the random source cannot supply
	// salt bytes. It is not retriable.
	ErrMissingRandomSource = errors.New("bcrypt: secure random source unavailable")
)
