package suggest

import (
	"sort"
	"unicode"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/width"
)

// OtherInitial is the bucket for tags whose first character has no known initial.
const OtherInitial = "#"

// The level-1 block of GB2312 (0xB0A1-0xD7F9) is ordered by pinyin. Each entry is
// the first code point of the block of characters whose reading starts with letter.
// There are no readings starting with I, U or V.
var gb2312Initials = []struct {
	code   int
	letter string
}{
	{0xB0A1, "A"}, {0xB0C5, "B"}, {0xB2C1, "C"}, {0xB4EE, "D"},
	{0xB6EA, "E"}, {0xB7A2, "F"}, {0xB8C1, "G"}, {0xB9FE, "H"},
	{0xBBF7, "J"}, {0xBFA6, "K"}, {0xC0AC, "L"}, {0xC2E8, "M"},
	{0xC4C3, "N"}, {0xC5B6, "O"}, {0xC5BE, "P"}, {0xC6DA, "Q"},
	{0xC8BB, "R"}, {0xC8F6, "S"}, {0xCBFA, "T"}, {0xCDDA, "W"},
	{0xCEF4, "X"}, {0xD1B9, "Y"}, {0xD4D1, "Z"},
}

const gb2312Level1End = 0xD7F9

// Initial returns the upper-case Latin letter a tag is filed under: the letter
// itself for Latin text (full-width forms included) and the pinyin initial for
// common simplified Chinese characters. Anything else returns OtherInitial.
func Initial(s string) string {
	var first rune
	for _, r := range s {
		first = r
		break
	}
	if first == 0 {
		return OtherInitial
	}

	if n := []rune(width.Narrow.String(string(first))); len(n) == 1 {
		first = n[0]
	}
	if first < unicode.MaxASCII {
		if unicode.IsLetter(first) {
			return string(unicode.ToUpper(first))
		}
		return OtherInitial
	}
	if !unicode.Is(unicode.Han, first) {
		return OtherInitial
	}
	return hanInitial(first)
}

func hanInitial(r rune) string {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(string(r))
	if err != nil || len(encoded) != 2 {
		return OtherInitial
	}
	code := int(encoded[0])<<8 | int(encoded[1])
	if code < gb2312Initials[0].code || code > gb2312Level1End {
		return OtherInitial
	}
	i := sort.Search(len(gb2312Initials), func(i int) bool { return gb2312Initials[i].code > code })
	return gb2312Initials[i-1].letter
}
