package helpers

import (
	"crypto/rand"
	"math/big"
)

const tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenTempPassword generates a random temporary password for newly provisioned
// accounts. The alphabet omits look-alike characters since the password is
// emailed and typed by hand.
func GenTempPassword(n int) (string, error) {
	if n <= 0 {
		n = 10
	}
	out := make([]byte, n)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordAlphabet[idx.Int64()]
	}
	return string(out), nil
}
