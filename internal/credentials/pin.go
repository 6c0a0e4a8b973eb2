package credentials

import (
	"crypto/rand"
	"math/big"
)

// PINLength is the number of digits in a child login PIN
const PINLength = 4

// GeneratePIN returns a random numeric PIN of PINLength digits. Leading
// zeros are kept.
func GeneratePIN() (string, error) {
	const digits = "0123456789"
	pin := make([]byte, PINLength)

	for i := range pin {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		pin[i] = digits[num.Int64()]
	}

	return string(pin), nil
}
