// Package shortid generates random short identifiers for auto-assigned URLs.
package shortid

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Length is the length of a generated short identifier.
const Length = 7

// alphabet is the base57 short-UUID alphabet: URL-safe, with the visually
// ambiguous characters 0, O, 1, l and I excluded.
const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// New returns a random identifier of Length characters drawn from alphabet.
// It does not check uniqueness; that is the caller's job.
func New() (string, error) {
	const op = "shortid.New"

	id, err := gonanoid.Generate(alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short id: %w", op, err)
	}

	return id, nil
}
