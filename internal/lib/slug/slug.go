// Package slug строит URL-идентификаторы статей из заголовков.
package slug

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLength максимальная длина slug в символах.
const MaxLength = 500

// space перечисляет пробельные символы: ASCII-пробелы, \v, разделители
// \x1c-\x1f, NEL и все символы категории Z (включая U+2028 и U+2029).
const space = `\s\v\x1c-\x1f\x85\p{Z}`

var (
	// всё, кроме букв, цифр, подчёркивания, пробельных символов и дефиса.
	// Комбинирующие знаки (\p{M}) словом не считаются и удаляются.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_` + space + `-]`)
	separators = regexp.MustCompile(`[` + space + `-]+`)
)

// Make приводит заголовок к нижнему регистру, удаляет посторонние символы,
// схлопывает пробелы и дефисы в один дефис и обрезает результат до MaxLength символов.
//
// Уникальность не гарантируется: одинаковые заголовки дают одинаковый slug.
func Make(title string) string {
	s := strings.ToLower(title)
	s = disallowed.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	if utf8.RuneCountInString(s) > MaxLength {
		s = string([]rune(s)[:MaxLength])
	}
	return s
}
