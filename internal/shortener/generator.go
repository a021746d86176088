package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

const (
	// Alphabet is the set of symbols short codes are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultCodeLength gives 62^6 (about 5.7e10) possible codes.
	DefaultCodeLength = 6
)

// CodeGenerator returns a random candidate code. Candidates are not
// guaranteed to be unique; callers check them against stored codes.
type CodeGenerator func() string

// NewCodeGenerator returns a generator sampling length symbols uniformly,
// with replacement, from Alphabet.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}

	return CodeGenerator(gen), nil
}
