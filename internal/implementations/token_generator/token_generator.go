package tokengenerator

import (
	"crypto/rand"
	"math/big"

	"passwordreset/internal/core/domain/token"
)

const tokenLength = 32

type Generator struct {
	chars []rune
}

func NewGenerator() *Generator {
	return &Generator{
		chars: []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"),
	}
}

// GenerateResetToken returns a 32 character token drawn from a 62
// character alphabet with crypto/rand. That is ~190 bits of entropy, so
// collisions between independently generated tokens are not a practical
// concern and no retry loop is needed.
func (g *Generator) GenerateResetToken() token.Token {
	max := big.NewInt(int64(len(g.chars)))
	b := make([]rune, tokenLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("Could not read from the system entropy source.")
		}
		b[i] = g.chars[n.Int64()]
	}
	return token.Token(b)
}
