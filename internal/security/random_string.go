package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

var (
	errLengthNegative = errors.New("random string length must be non-negative")
	errAlphabetEmpty  = errors.New("random string alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand. Selection is modulo-free, so no alphabet position is
// favored over another.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errLengthNegative
	}
	if alphabet == "" {
		return "", errAlphabetEmpty
	}
	if length == 0 {
		return "", nil
	}

	bound := big.NewInt(int64(len(alphabet)))
	var builder strings.Builder
	builder.Grow(length)
	for written := 0; written < length; written++ {
		index, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[index.Int64()])
	}
	return builder.String(), nil
}
