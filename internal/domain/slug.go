package domain

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const skuPrefixLen = 8

// Slugify lowercases text, folds it to ASCII and joins words with '-'.
func Slugify(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFKD.String(text) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-':
			dash = true
		}
	}
	return strings.Trim(b.String(), "_")
}

func DefaultSKU(title string, id uuid.UUID) string {
	base := strings.ToUpper(strings.ReplaceAll(Slugify(title), "-", ""))
	if len(base) > skuPrefixLen {
		base = base[:skuPrefixLen]
	}
	if id == uuid.Nil {
		return base
	}
	return base + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
