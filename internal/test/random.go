package test

import (
	"math/rand"
	"sync"
	"time"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomOrderID returns a positive pseudo-random order identifier.
func RandomOrderID() int64 {
	return int64(randomIntn(1_000_000)) + 1
}

// RandomInvoiceID returns a pseudo-random gateway invoice identifier.
func RandomInvoiceID() string {
	return "inv-" + randomToken(12)
}

// RandomEmail returns a pseudo-random payer email address.
func RandomEmail() string {
	return randomToken(8) + "@example.com"
}

func randomToken(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
