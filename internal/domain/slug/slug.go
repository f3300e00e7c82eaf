package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLen = 80

// 店舗名からURL用のslugを作る。
// アクセントを落として文字・数字以外は"-"にまとめる（"Café d'Oran" -> "cafe-d-oran"）。
// アラビア文字などラテン以外の文字はそのまま残す（"مطعم البحر" -> "مطعم-البحر"）。
// 文字が1つも残らないときだけ "restaurant"。
func Make(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}

	s := strings.TrimRight(b.String(), "-")
	//maxLenは文字数（マルチバイトの途中で切らない）
	if rs := []rune(s); len(rs) > maxLen {
		s = strings.TrimRight(string(rs[:maxLen]), "-")
	}
	if s == "" {
		return "restaurant"
	}
	return s
}

// 重複したときの候補（base-2, base-3 ...）
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

