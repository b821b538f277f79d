package variables

import (
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestIsSpaceMatchesSpaceClass(t *testing.T) {
	class := regexp.MustCompile(`^` + SpaceClass + `$`)
	for r := rune(0); r <= 0xffff; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		if IsSpace(r) != class.MatchString(string(r)) {
			t.Fatalf("IsSpace(%U) = %v disagrees with SpaceClass", r, IsSpace(r))
		}
	}
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "a b", Trim("\ufeff a b \n"))
	assert.Equal(t, "\u0085a", Trim("\u0085a"))
	assert.Equal(t, "", Trim("\u3000 \t"))
}
