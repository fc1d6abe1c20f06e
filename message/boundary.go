package message

import (
	"math/rand"
	"strings"
)

var boundaryLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateBoundary returns a random 30 character MIME boundary.
func GenerateBoundary() string {
	s := make([]rune, 30)
	for i := range s {
		s[i] = boundaryLetters[rand.Intn(len(boundaryLetters))]
	}
	return string(s)
}

// GenerateSafeBoundary returns a random boundary that does not occur anywhere
// in contents.
func GenerateSafeBoundary(contents string) string {
	for {
		boundary := GenerateBoundary()
		if !strings.Contains(contents, boundary) {
			return boundary
		}
	}
}
