package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

const refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReceiptRef produces a short A-Z0-9 reference for payment receipts,
// e.g. "AB4D93KF". Uses crypto/rand with math/big to avoid modulo bias.
func GenerateReceiptRef(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(refCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(refCharset[num.Int64()])
	}
	return sb.String(), nil
}
