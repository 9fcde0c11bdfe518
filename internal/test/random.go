package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const cyrillicLetters = "абвгдеёжзийклмнопрстуфхцчшщъыьэюяАБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ"

var (
	rngMu   sync.Mutex
	rng     = rand.New(rand.NewSource(time.Now().UnixNano()))
	letters = []rune(cyrillicLetters)
)

// RandomCyrillicWord returns a pseudo-random Cyrillic word within the provided bounds.
// When maxLen equals minLen the resulting word always has that exact length.
func RandomCyrillicWord(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]rune, length)
	for i := range buf {
		buf[i] = letters[randomIntn(len(letters))]
	}
	return string(buf)
}

// RandomFullName joins words random Cyrillic words with single spaces.
func RandomFullName(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = RandomCyrillicWord(2, 12)
	}
	return strings.Join(parts, " ")
}

// RandomInt64 returns a pseudo-random value in [1, max].
func RandomInt64(max int64) int64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Int63n(max) + 1
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
