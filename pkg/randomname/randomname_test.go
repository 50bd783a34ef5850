package randomname_test

import (
	"strings"
	"testing"

	"github.com/juan-009/authguard/pkg/randomname"
	"github.com/stretchr/testify/assert"
)

func TestSimple_ProducesTwoWords(t *testing.T) {
	name := randomname.Simple()
	assert.Equal(t, 2, len(strings.Split(name, "-")))
}

func TestWithSuffix_AppendsHex6(t *testing.T) {
	name := randomname.WithSuffix()
	parts := strings.Split(name, "-")
	require := parts[len(parts)-1]
	assert.Len(t, require, 6)
}

func TestGenerate_CustomSeparatorAndValidator(t *testing.T) {
	opts := &randomname.Options{
		Pattern:   []randomname.WordType{randomname.Color, randomname.Noun},
		Separator: "_",
		Validator: func(s string) bool { return strings.Contains(s, "_") },
	}
	name := randomname.Generate(opts)
	assert.Contains(t, name, "_")
}
