package test

import (
	"fmt"
	"math/rand"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns an alphanumeric string of length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	buf := make([]byte, minLen+rand.Intn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = asciiLetters[rand.Intn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomEmail returns a unique looking lower-case address.
func RandomEmail() string {
	return fmt.Sprintf("guest%d@example.com", rand.Int63n(1_000_000_000))
}

// RandomPhone returns an Indonesian style mobile number.
func RandomPhone() string {
	return fmt.Sprintf("+628%010d", rand.Int63n(10_000_000_000))
}
