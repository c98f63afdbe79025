package txcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const CodeLength = 6

type RandomGenerator struct {
	max *big.Int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{
		max: big.NewInt(1_000_000),
	}
}

func (g *RandomGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, g.max)
	if err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

type GeneratorFunc func() (string, error)

func (f GeneratorFunc) Generate() (string, error) {
	return f()
}
