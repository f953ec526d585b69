package generator

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand/v2"
)

// RandomSource yields uniform indices into a set of size n.
type RandomSource interface {
	// Index returns a uniform random int in [0, n).
	Index(n int) (int, error)
}

// CryptoSource draws from crypto/rand. It is safe for concurrent use.
type CryptoSource struct{}

// NewCryptoSource returns the production RandomSource.
func NewCryptoSource() CryptoSource {
	return CryptoSource{}
}

// Index returns a uniform random int in [0, n) using crypto/rand.
func (CryptoSource) Index(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid set size %d", n)
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SeededSource is a deterministic RandomSource. Not safe for concurrent use.
type SeededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a SeededSource; equal seeds yield equal sequences.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (s *SeededSource) Index(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid set size %d", n)
	}
	return s.rng.IntN(n), nil
}
