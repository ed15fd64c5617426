package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const inviteAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateInviteCode returns an upper-case base-36 code of the given length.
func GenerateInviteCode(length int) (string, error) {
	code := make([]byte, length)
	max := big.NewInt(int64(len(inviteAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = inviteAlphabet[n.Int64()]
	}
	return string(code), nil
}

// NewID returns a random identifier for documents and client sessions.
func NewID() string {
	return uuid.New().String()
}
