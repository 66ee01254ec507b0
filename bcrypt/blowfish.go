package bcrypt

import "golang.org/x/crypto/blowfish"

const (
	// magicCipherData is encrypted with the derived key to produce the digest.
	magicCipherData = "OrpheanBeholderScryDoubt"

	// digestLen is the number of digest bytes kept in an encoded hash. The
	// last of the 24 encrypted bytes is dropped.
	digestLen = 23

	// digestRounds is how many times the magic text is encrypted.
	digestRounds = 64
)

// digest encrypts the magic text digestRounds times in ECB mode and returns
// all 24 bytes.
func digest(c *blowfish.Cipher) []byte {
	out := []byte(magicCipherData)
	for range digestRounds {
		for i := 0; i < len(out); i += blowfish.BlockSize {
			c.Encrypt(out[i:i+blowfish.BlockSize], out[i:i+blowfish.BlockSize])
		}
	}
	return out
}
