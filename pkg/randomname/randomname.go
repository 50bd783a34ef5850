package randomname

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// WordType is a category in a name pattern.
type WordType int

const (
	Adjective WordType = iota
	Color
	Noun
	Size
)

// SuffixType appends extra entropy to a generated name.
type SuffixType int

const (
	NoSuffix SuffixType = iota
	Hex6
	Hex8
	Numeric4
)

var defaultWords = map[WordType][]string{
	Adjective: {"happy", "brave", "quick", "gentle", "bold", "calm", "eager", "fair"},
	Color:     {"red", "blue", "green", "purple", "amber", "teal", "crimson", "violet"},
	Noun:      {"elephant", "mountain", "river", "dragon", "whale", "falcon", "fox", "otter"},
	Size:      {"tiny", "small", "large", "huge", "compact", "vast"},
}

// Options configures Generate. A nil Options uses the adjective-noun
// pattern with a hyphen separator and no suffix.
type Options struct {
	Pattern   []WordType
	Separator string
	Suffix    SuffixType
	Words     WordLists
	Validator func(string) bool
}

// WordLists overrides one or more of the default word categories.
type WordLists struct {
	Adjectives []string
	Colors     []string
	Nouns      []string
	Sizes      []string
}

func (o *Options) wordsFor(t WordType) []string {
	switch t {
	case Adjective:
		if len(o.Words.Adjectives) > 0 {
			return o.Words.Adjectives
		}
	case Color:
		if len(o.Words.Colors) > 0 {
			return o.Words.Colors
		}
	case Noun:
		if len(o.Words.Nouns) > 0 {
			return o.Words.Nouns
		}
	case Size:
		if len(o.Words.Sizes) > 0 {
			return o.Words.Sizes
		}
	}
	return defaultWords[t]
}

const maxValidationAttempts = 100

// Generate builds a name from opts, or the adjective-noun default if opts
// is nil. It never returns an error: generation failures fall back to a
// best-effort result.
func Generate(opts *Options) string {
	if opts == nil {
		opts = &Options{Pattern: []WordType{Adjective, Noun}}
	}
	pattern := opts.Pattern
	if len(pattern) == 0 {
		pattern = []WordType{Adjective, Noun}
	}
	separator := opts.Separator
	if separator == "" {
		separator = "-"
	}

	var last string
	for attempt := 0; attempt < maxValidationAttempts; attempt++ {
		parts := make([]string, 0, len(pattern)+1)
		for _, t := range pattern {
			words := opts.wordsFor(t)
			parts = append(parts, pick(words))
		}
		if suffix := makeSuffix(opts.Suffix); suffix != "" {
			parts = append(parts, suffix)
		}
		last = strings.Join(parts, separator)
		if opts.Validator == nil || opts.Validator(last) {
			return last
		}
	}
	return last
}

func pick(words []string) string {
	if len(words) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return words[0]
	}
	return words[n.Int64()]
}

func makeSuffix(t SuffixType) string {
	switch t {
	case Hex6:
		return randomHex(3)
	case Hex8:
		return randomHex(4)
	case Numeric4:
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "0000"
		}
		return fmt.Sprintf("%04d", n.Int64())
	default:
		return ""
	}
}

func randomHex(bytes int) string {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return strings.Repeat("0", bytes*2)
	}
	return hex.EncodeToString(buf)
}

// Simple generates an adjective-noun name, e.g. "happy-elephant".
func Simple() string { return Generate(&Options{Pattern: []WordType{Adjective, Noun}}) }

// Colorful generates a color-noun name, e.g. "blue-whale".
func Colorful() string { return Generate(&Options{Pattern: []WordType{Color, Noun}}) }

// Descriptive generates an adjective-color-noun name.
func Descriptive() string {
	return Generate(&Options{Pattern: []WordType{Adjective, Color, Noun}})
}

// WithSuffix generates an adjective-noun name with a hex6 suffix.
func WithSuffix() string {
	return Generate(&Options{Pattern: []WordType{Adjective, Noun}, Suffix: Hex6})
}

// Sized generates a size-noun name.
func Sized() string { return Generate(&Options{Pattern: []WordType{Size, Noun}}) }

// Complex generates a size-adjective-noun name.
func Complex() string { return Generate(&Options{Pattern: []WordType{Size, Adjective, Noun}}) }

// Full generates a size-adjective-color-noun name.
func Full() string {
	return Generate(&Options{Pattern: []WordType{Size, Adjective, Color, Noun}})
}
