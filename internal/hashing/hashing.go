// Package hashing holds the fixed set of toy hash functions the simulator can
// fan a string out over. They are deliberately weak so collisions, and with
// them false positives, show up after only a handful of inserts.
package hashing

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

var (
	ErrInvalidInput    = errors.New("hashing: invalid input")
	ErrUnknownFunction = errors.New("hashing: unknown hash function")
)

// Func maps text onto a slot index in [0, modulo).
//
// Callers pass lower-cased, trimmed text.
type Func func(text string, modulo int) (int, error)

const (
	NameLength  = "length"
	NameCharSum = "char-sum"
	NameCharAvg = "char-avg"
)

var registry = map[string]Func{
	NameLength:  ByLength,
	NameCharSum: ByCharSum,
	NameCharAvg: ByCharAvg,
}

// ByLength hashes by the number of characters in text.
func ByLength(text string, modulo int) (int, error) {
	if modulo <= 0 {
		return 0, fmt.Errorf("%w: modulo %d", ErrInvalidInput, modulo)
	}
	return utf8.RuneCountInString(text) % modulo, nil
}

// ByCharSum hashes by the sum of the code points of text.
func ByCharSum(text string, modulo int) (int, error) {
	if modulo <= 0 {
		return 0, fmt.Errorf("%w: modulo %d", ErrInvalidInput, modulo)
	}
	sum, _ := codePoints(text)
	return sum % modulo, nil
}

// ByCharAvg hashes by the truncated mean code point of text. Empty text has
// no mean and is rejected.
func ByCharAvg(text string, modulo int) (int, error) {
	if modulo <= 0 {
		return 0, fmt.Errorf("%w: modulo %d", ErrInvalidInput, modulo)
	}
	sum, n := codePoints(text)
	if n == 0 {
		return 0, fmt.Errorf("%w: average of empty text", ErrInvalidInput)
	}
	return (sum / n) % modulo, nil
}

func codePoints(text string) (sum, n int) {
	for _, r := range text {
		sum += int(r)
		n++
	}
	return sum, n
}

// Lookup returns the hash function registered under name.
func Lookup(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return fn, nil
}

// LookupAll resolves names in order.
func LookupAll(names []string) ([]Func, error) {
	fns := make([]Func, 0, len(names))
	for _, name := range names {
		fn, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

// Names lists the registered hash function names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
