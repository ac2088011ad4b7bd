package vouchercode

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.UnixMilli(1700000000000)

func fixedClock() time.Time { return fixed }

// cycle repeats the same bytes forever, forcing suffix collisions.
type cycle struct {
	data []byte
	pos  int
}

func (c *cycle) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = c.data[c.pos%len(c.data)]
		c.pos++
	}
	return len(p), nil
}

func TestGenerateCountAndShape(t *testing.T) {
	for _, n := range []int{0, -3, 1, 5, 250} {
		codes, err := Generate(n)
		require.NoError(t, err)

		want := n
		if n < 0 {
			want = 0
		}
		require.Len(t, codes, want)

		seen := map[string]bool{}
		for _, c := range codes {
			assert.True(t, Valid(c), c)
			assert.False(t, seen[c], "duplicate %s", c)
			seen[c] = true
		}
	}
}

func TestTimestampPrefix(t *testing.T) {
	g := &Generator{Now: fixedClock, Rand: &cycle{data: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}}}
	code, err := g.One()
	require.NoError(t, err)

	prefix, suffix, ok := strings.Cut(code, "-")
	require.True(t, ok)
	assert.Equal(t, "LOYW3V28", prefix)
	assert.Equal(t, "ABCDEFGHIJKL", suffix)
}

func TestCollidingDrawsAreRedrawn(t *testing.T) {
	g := &Generator{Now: fixedClock, Rand: &cycle{data: bytes.Repeat([]byte{0}, 12)}}
	_, err := g.Generate(2)
	assert.ErrorContains(t, err, "no unique code")

	// A 13-byte cycle read 12 at a time yields 13 distinct suffixes.
	g = &Generator{Now: fixedClock, Rand: &cycle{data: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}}}
	codes, err := g.Generate(13)
	require.NoError(t, err)
	assert.Len(t, codes, 13)
}

func TestBiasedBytesAreSkipped(t *testing.T) {
	g := &Generator{Now: fixedClock, Rand: &cycle{data: []byte{255, 254, 253, 252, 35}}}
	code, err := g.One()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(code, "-999999999999"), code)
}

func TestRandomFailure(t *testing.T) {
	g := &Generator{Now: fixedClock, Rand: io.MultiReader()}
	_, err := g.Generate(1)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("LOYW3V28-ABCDEFGHIJ12"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("LOYW3V28-ABCDEFGHIJ1"))
	assert.False(t, Valid("loyw3v28-ABCDEFGHIJ12"))
	assert.False(t, Valid("LOYW3V28ABCDEFGHIJ12"))
	assert.False(t, Valid("-ABCDEFGHIJ12"))
}
