package field

import (
	"regexp"
	"strings"
)

var (
	tagRemnant = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`[\s\x{00A0}]+`)
	dateSeps   = strings.NewReplacer("-", "/", ".", "/")
)

// edge separators trimmed from cleaned values: spaces, colons, dashes,
// Persian comma and semicolon.
const edgeCutset = " :：-–—.،؛"

// Normalize cleans a raw free-text capture for a given field. It is pure
// and never fails; validity is judged afterwards by the field's Accept.
func Normalize(fieldID, raw string) string {
	return normalize(fieldID, raw, true)
}

// NormalizeCell cleans a raw table-cell capture. Cell captures are already
// scoped to one cell, so no label-boundary cut is applied to them.
func NormalizeCell(fieldID, raw string) string {
	return normalize(fieldID, raw, false)
}

func normalize(fieldID, raw string, cutLabels bool) string {
	v := tagRemnant.ReplaceAllString(raw, " ")
	v = FoldDigits(v)
	v = whitespace.ReplaceAllString(v, " ")
	v = strings.Trim(v, edgeCutset)

	switch fieldID {
	case OwnerFullName, FatherName, Address:
		if cutLabels {
			v = trimAtLabel(v)
		}
	case NationalID, PostalCode:
		v = truncate(digitsOnly(v), 10)
	case Phone:
		v = digitsOnly(v)
	case CertificateNo:
		v = strings.ReplaceAll(v, " ", "")
	case Amount:
		v = groupThousands(digitsOnly(v))
	case StartDate, EndDate:
		v = strings.ReplaceAll(v, " ", "")
		v = dateSeps.Replace(v)
	}
	return v
}

// labelTokens are words that start another field's label in free text.
// Greedy free-text captures run until the next structural boundary, which
// in collapsed text may be the following label; the capture is cut at the
// first such token.
var labelTokens = []string{"نام", "کد", "شماره", "تاریخ", "مبلغ", "نشانی", "آدرس", "تلفن", "موبایل", "لغایت"}

// trimAtLabel cuts a free-text capture at the first label token that
// appears as a whole word. A word that merely begins with a token, like
// the surname نامجو, is part of the value and stays.
func trimAtLabel(v string) string {
	cut := len(v)
	for _, tok := range labelTokens {
		for start := 0; start < cut; {
			i := strings.Index(v[start:], " "+tok)
			if i < 0 {
				break
			}
			i += start
			if wordBoundary(v, i+1+len(tok)) {
				if i < cut {
					cut = i
				}
				break
			}
			start = i + 1
		}
	}
	return strings.TrimSpace(v[:cut])
}

// wordBoundary reports whether position i in v ends a word.
func wordBoundary(v string, i int) bool {
	if i >= len(v) {
		return true
	}
	return v[i] == ' ' || v[i] == ':' || strings.HasPrefix(v[i:], "：")
}

// FoldDigits maps Persian (۰-۹) and Arabic-Indic (٠-٩) digits to ASCII.
func FoldDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '۰' && r <= '۹':
			r = '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			r = '0' + (r - '٠')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripMarkup produces the plain-text view of a content blob: tags replaced
// by spaces, whitespace collapsed.
func StripMarkup(content string) string {
	s := tagRemnant.ReplaceAllString(content, " ")
	return whitespace.ReplaceAllString(s, " ")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// groupThousands reinserts a comma every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + n/3)
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
