package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

const (
	codeMin = 100000
	codeMax = 999999

	// ResetTokenBytes is the entropy of a reset token before hex encoding.
	ResetTokenBytes = 32
)

// SecretGenerator draws uniformly distributed codes and tokens.
type SecretGenerator struct {
	reader io.Reader
}

func NewSecretGenerator() SecretGenerator {
	return SecretGenerator{reader: rand.Reader}
}

// NewSecretGeneratorWithReader is used by tests to make draws reproducible.
func NewSecretGeneratorWithReader(reader io.Reader) SecretGenerator {
	return SecretGenerator{reader: reader}
}

// Code returns a six digit code in [100000, 999999].
func (g SecretGenerator) Code() (string, error) {
	n, err := rand.Int(g.source(), big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// ResetToken returns 32 random bytes hex encoded.
func (g SecretGenerator) ResetToken() (string, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := io.ReadFull(g.source(), buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (g SecretGenerator) source() io.Reader {
	if g.reader == nil {
		return rand.Reader
	}
	return g.reader
}
