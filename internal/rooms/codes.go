package rooms

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Room codes are fixed-width numeric strings, uniformly sampled over the
// whole code space. Uniqueness against live rooms is the registry's job.
const codeLength = 4

var codeSpace = big.NewInt(10_000)

func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeLength, n.Int64()), nil
}
