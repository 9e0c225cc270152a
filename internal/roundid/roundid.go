// Package roundid generates sortable round identifiers: a UUIDv7 encoded as
// 26 characters of Crockford base32.
package roundid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded round ID: 128 bits padded to 130 and split into 5-bit groups.
const Length = 26

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator hands out time-sortable round IDs.
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock and a nil
// RandSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate creates a new round ID using the real clock and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns the next round ID as a string.
func (g *Generator) Generate() string {
	return Encode(g.New())
}

// New lays out a UUIDv7: a 48-bit millisecond timestamp from the generator's
// clock, version 7, variant 10 and random bits everywhere else.
func (g *Generator) New() uuid.UUID {
	var id uuid.UUID

	now := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(now >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// Encode treats the UUID as a 130-bit number with two leading zero bits, so
// the first character never exceeds '7' and IDs sort by timestamp.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	var acc uint32
	bits := 2 // leading padding
	pos := 0
	for _, b := range id {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = alphabet[(acc>>bits)&0x1f]
			pos++
		}
		acc &= 1<<bits - 1
	}
	return string(out[:])
}

// Parse decodes a round ID back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	if err := Validate(s); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	var acc uint32
	bits := -2 // drop the leading padding
	pos := 0
	for i := 0; i < Length; i++ {
		acc = acc<<5 | uint32(strings.IndexByte(alphabet, s[i]))
		bits += 5
		if bits >= 8 {
			bits -= 8
			id[pos] = byte(acc >> bits)
			pos++
			acc &= 1<<bits - 1
		}
	}
	return id, nil
}

// Validate checks if a round ID is well formed.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
