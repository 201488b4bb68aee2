package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
	"time"

	"github.com/google/uuid"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateOrderID creates a unique order ID with timestamp.
// Format: HC-YYYYMMDD-HHMMSS-RANDOM
func GenerateOrderID() string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", mrand.Intn(10000))

	return fmt.Sprintf("HC-%s-%s-%s", datePart, timePart, randomPart)
}

const tempPasswordChars = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTempPassword creates a random password for guest accounts. The
// account is flagged to force a change on first login.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}

	password := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordChars)))
	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		password[i] = tempPasswordChars[n.Int64()]
	}

	return string(password), nil
}
