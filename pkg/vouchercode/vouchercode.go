// Package vouchercode generates redemption codes of the form
//
//	TIMESTAMP-XXXXXXXXXXXX
//
// where TIMESTAMP is the generation instant in Unix milliseconds, base-36
// and upper-cased, and the suffix is 12 independent draws from [A-Z0-9].
package vouchercode

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	SuffixLen  = 12
	maxRedraws = 64
)

// rejection threshold: largest multiple of len(alphabet) that fits in a byte.
const unbiased = 256 - 256%len(alphabet)

var pattern = regexp.MustCompile(`^[A-Z0-9]+-[A-Z0-9]{12}$`)

// Valid reports whether code has the TIMESTAMP-SUFFIX shape.
func Valid(code string) bool {
	return pattern.MatchString(code)
}

// Generator produces codes from an injectable clock and random source.
type Generator struct {
	Now  func() time.Time
	Rand io.Reader
}

// New returns a Generator on the wall clock and crypto/rand.
func New() *Generator {
	return &Generator{Now: time.Now, Rand: rand.Reader}
}

// Generate returns n codes, distinct within the batch. n <= 0 returns an
// empty slice.
func Generate(n int) ([]string, error) {
	return New().Generate(n)
}

// Generate returns n distinct codes. A suffix that collides with one already
// in the batch is redrawn.
func (g *Generator) Generate(n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	codes := make([]string, 0, n)
	seen := make(map[string]struct{}, n)

	for len(codes) < n {
		var (
			code string
			err  error
		)
		for attempt := 0; ; attempt++ {
			if attempt == maxRedraws {
				return nil, fmt.Errorf("vouchercode: no unique code after %d draws", maxRedraws)
			}
			code, err = g.One()
			if err != nil {
				return nil, err
			}
			if _, dup := seen[code]; !dup {
				break
			}
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// One returns a single code.
func (g *Generator) One() (string, error) {
	suffix, err := g.suffix()
	if err != nil {
		return "", err
	}
	return Timestamp(g.Now()) + "-" + suffix, nil
}

// Timestamp encodes t as upper-case base-36 Unix milliseconds.
func Timestamp(t time.Time) string {
	return strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

func (g *Generator) suffix() (string, error) {
	out := make([]byte, 0, SuffixLen)
	buf := make([]byte, SuffixLen)

	for len(out) < SuffixLen {
		if _, err := io.ReadFull(g.Rand, buf); err != nil {
			return "", fmt.Errorf("vouchercode: read random: %w", err)
		}
		for _, b := range buf {
			if int(b) >= unbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == SuffixLen {
				break
			}
		}
	}
	return string(out), nil
}
