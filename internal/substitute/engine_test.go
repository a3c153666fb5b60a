package substitute

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute_ReplacesSelectedField(t *testing.T) {
	content := "<w:t>نام و نام خانوادگی: علی رضایی</w:t>"
	original := map[string]string{"owner_full_name": "علی رضایی"}

	got, stats := Substitute(content, original,
		[]string{"owner_full_name"}, map[string]string{"owner_full_name": "حسن کریمی"})

	assert.Equal(t, "<w:t>نام و نام خانوادگی: حسن کریمی</w:t>", got)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Replacements["owner_full_name"])
}

func TestSubstitute_OnlySelectedFieldsTouched(t *testing.T) {
	content := "نام: علی رضایی کد ملی: 0499370899"
	original := map[string]string{
		"owner_full_name": "علی رضایی",
		"national_id":     "0499370899",
	}

	got, _ := Substitute(content, original,
		[]string{"owner_full_name"}, map[string]string{
			"owner_full_name": "حسن کریمی",
			"national_id":     "1111111111",
		})

	assert.Contains(t, got, "حسن کریمی")
	// non-selected field's original literal survives unchanged
	assert.Contains(t, got, "0499370899")
	assert.NotContains(t, got, "1111111111")
}

func TestSubstitute_NoOpWhenValuesEqual(t *testing.T) {
	content := "کد ملی: 0499370899"
	original := map[string]string{"national_id": "0499370899"}

	got, stats := Substitute(content, original,
		[]string{"national_id"}, map[string]string{"national_id": "0499370899"})

	assert.Equal(t, content, got)
	assert.Zero(t, stats.Total)
}

func TestSubstitute_EmptyValuesSkipped(t *testing.T) {
	content := "کد ملی: 0499370899"
	original := map[string]string{"national_id": "0499370899", "phone": ""}

	got, stats := Substitute(content, original,
		[]string{"national_id", "phone"}, map[string]string{"national_id": "", "phone": "09120000000"})

	assert.Equal(t, content, got)
	assert.Zero(t, stats.Total)
}

func TestSubstitute_ZeroOccurrencesIsNotAnError(t *testing.T) {
	content := "متن بدون مقدار"
	original := map[string]string{"owner_full_name": "علی رضایی"}

	got, stats := Substitute(content, original,
		[]string{"owner_full_name"}, map[string]string{"owner_full_name": "حسن کریمی"})

	assert.Equal(t, content, got)
	assert.Equal(t, 0, stats.Replacements["owner_full_name"])
}

func TestSubstitute_ReplacesEveryOccurrence(t *testing.T) {
	content := strings.Repeat("مبلغ 2,500,000 ریال؛ ", 3)
	original := map[string]string{"amount": "2,500,000"}

	got, stats := Substitute(content, original,
		[]string{"amount"}, map[string]string{"amount": "3,000,000"})

	assert.Equal(t, 3, stats.Replacements["amount"])
	assert.Equal(t, 3, strings.Count(got, "3,000,000"))
	assert.NotContains(t, got, "2,500,000")
}

func TestSubstitute_UnknownSelectedFieldIgnored(t *testing.T) {
	content := "متن"
	got, stats := Substitute(content, map[string]string{},
		[]string{"missing"}, map[string]string{"missing": "x"})

	assert.Equal(t, content, got)
	assert.Zero(t, stats.Total)
}
