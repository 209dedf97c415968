// Package generator builds the random word sequences typed in a session.
package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

const (
	consonants = "bcdfghjklmnpqrstvwxyz"
	vowels     = "aeiou"
)

// Generator produces consonant-vowel-consonant words.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded from crypto/rand, or the current time if
// that fails.
func New() *Generator {
	return NewWithSeed(newSeed())
}

// NewWithSeed returns a Generator that yields a deterministic sequence.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns exactly count words. Duplicates are allowed.
// A non-positive count yields an empty slice.
func (g *Generator) Generate(count int) []string {
	if count <= 0 {
		return []string{}
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, g.word())
	}
	return result
}

func (g *Generator) word() string {
	b := [3]byte{
		pick(g.rnd, consonants),
		pick(g.rnd, vowels),
		pick(g.rnd, consonants),
	}
	return string(b[:])
}

func pick(rnd *rand.Rand, alphabet string) byte {
	return alphabet[rnd.Intn(len(alphabet))]
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
