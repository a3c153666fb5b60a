package field

import (
	"regexp"
	"strings"
)

var (
	datePattern   = regexp.MustCompile(`^\d{2,4}/\d{1,2}/\d{1,2}$`)
	asciiDigits   = regexp.MustCompile(`[0-9]`)
	serialPattern = regexp.MustCompile(`^[0-9][0-9/\-]{3,17}$`)
)

func acceptPersianName(v string) bool {
	if len([]rune(v)) < 3 {
		return false
	}
	return !asciiDigits.MatchString(v)
}

// acceptNationalID validates the 10-digit national identifier: mod-11
// checksum with weights 10..2, rejecting repeated-digit and trivially
// ascending codes, which satisfy the checksum but are known fakes.
func acceptNationalID(v string) bool {
	if len(v) != 10 {
		return false
	}
	repeated, ascending := true, true
	for i := 1; i < 10; i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
		if v[i] != v[0] {
			repeated = false
		}
		if i < 9 && v[i] != v[i-1]+1 {
			ascending = false
		}
	}
	if v[0] < '0' || v[0] > '9' || repeated || ascending {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(v[i]-'0') * (10 - i)
	}
	r := sum % 11
	check := int(v[9] - '0')
	if r < 2 {
		return check == r
	}
	return check == 11-r
}

func acceptCertificateNo(v string) bool {
	return serialPattern.MatchString(v)
}

func acceptPhone(v string) bool {
	return len(v) >= 8 && len(v) <= 11
}

func acceptPostalCode(v string) bool {
	if len(v) != 10 {
		return false
	}
	return strings.Count(v, string(v[0])) != 10
}

func acceptAddress(v string) bool {
	return len([]rune(v)) >= 10
}

func acceptAmount(v string) bool {
	digits := strings.ReplaceAll(v, ",", "")
	if digits == "" {
		return false
	}
	return strings.Trim(digits, "0") != ""
}

func acceptDate(v string) bool {
	return datePattern.MatchString(v)
}
