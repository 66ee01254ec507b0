// Package bcrypt computes and verifies adaptive password hashes using the
// bcrypt construction: an expensive, salted key schedule over the Blowfish
// cipher, followed by 64 rounds of encrypting a fixed plaintext.
//
// # Hash format
//
// Every hash is a self-describing 60 character string:
//
//	$2b$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy
//	\__/\_/\____________________/\_____________________________/
//	 |   |          salt (22)               digest (31)
//	 |   cost (two digits, log2 of the iteration count)
//	 version (2a, 2b, 2x or 2y)
//
// The salt and digest use bcrypt's own base64 alphabet
// ("./A-Za-z0-9"), which is not RFC 4648 compatible.
//
// # Quick start
//
//	hash, err := bcrypt.HashWithCost([]byte("my-secret-password"), bcrypt.DefaultCost)
//	if err != nil { log.Fatal(err) }
//
//	ok := bcrypt.Compare([]byte("my-secret-password"), hash) // true
//
// # Operations
//
//   - [GenerateSalt] draws 16 random bytes and renders "$2b$NN$" + 22 chars.
//   - [Hash] hashes a password with an explicit salt (or a full hash, whose
//     salt prefix is reused).
//   - [HashWithCost] generates a fresh salt first.
//   - [Compare] re-hashes and compares digests in constant time. It never
//     returns an error: malformed hashes simply do not match.
//   - [GetRounds] extracts the cost from a hash.
//
// [Hasher] bundles a cost, version and random source for callers that want a
// configured, reusable value instead of package-level functions.
//
// # Password length
//
// Only the first 72 bytes of (password || NUL) feed the key schedule. Longer
// passwords are accepted and silently truncated; this is part of the bcrypt
// contract, not an error.
//
// # Concurrency
//
// All functions are safe for concurrent use. Each call keys its own
// Blowfish cipher from golang.org/x/crypto/blowfish and shares nothing with
// other calls. The work is CPU bound and cannot be interrupted; see package
// pool for offloading calls onto a bounded set of workers.
package bcrypt
