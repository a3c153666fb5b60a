package field

import (
	"fmt"
	"regexp"
)

// Field identifiers. These are the stable keys used in extraction results,
// replacement records, and API payloads.
const (
	OwnerFullName = "owner_full_name"
	FatherName    = "father_name"
	NationalID    = "national_id"
	CertificateNo = "certificate_no"
	Phone         = "phone"
	PostalCode    = "postal_code"
	Address       = "address"
	Amount        = "amount"
	StartDate     = "contract_start_date"
	EndDate       = "contract_end_date"
)

// digitInner lists ASCII, Persian, and Arabic-Indic digit ranges.
const digitInner = `0-9\x{06F0}-\x{06F9}\x{0660}-\x{0669}`

// digitCls matches a single digit in any of those scripts.
const digitCls = `[` + digitInner + `]`

// DateToken is the raw shape of a date as it appears in templates, before
// separator normalization.
const DateToken = digitCls + `{2,4}[./\-]` + digitCls + `{1,2}[./\-]` + digitCls + `{1,2}`

// persianWords captures up to n space-separated Arabic-script words
// (ZWNJ-joined compounds included).
func persianWords(n int) string {
	return fmt.Sprintf(`((?:[\p{Arabic}\x{200C}]+ ?){1,%d})`, n)
}

// digitRun captures a run of digits with optional inline separators.
func digitRun(min, max int) string {
	return fmt.Sprintf(`(%s[%s \-/]{%d,%d})`, digitCls, digitInner, min, max)
}

// tablePat builds the structural pattern for a labeled table cell: the label
// text, a run of markup closing its cell, then the first text run that
// follows. Tried against the markup-preserving content view.
func tablePat(labels string) *regexp.Regexp {
	return regexp.MustCompile(`(?:` + labels + `)[\s:：]*(?:<[^>]*>\s*)+([^<>]+)<`)
}

func plainPat(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}

// FieldDefinition describes one recognized semantic field: how it is
// detected in template text and which cleaned values are acceptable.
type FieldDefinition struct {
	ID    string
	Label string
	// Patterns are tried in declaration order against the tag-stripped
	// text view; the first non-empty capture wins.
	Patterns []*regexp.Regexp
	// TablePattern, when set, is tried before Patterns against the
	// markup-preserving view. Cell-scoped matches are considered more
	// reliable than free text.
	TablePattern *regexp.Regexp
	// Accept judges the normalized value. Rejected values leave the
	// field undetected, which is not an error.
	Accept func(string) bool
}

// Catalog is the immutable registry of recognized fields. Built once at
// startup and shared by reference; never mutated afterwards.
type Catalog struct {
	defs    []FieldDefinition
	byID    map[string]*FieldDefinition
	byLabel map[string]string
}

// NewCatalog builds the static field registry.
func NewCatalog() *Catalog {
	defs := []FieldDefinition{
		{
			ID:           OwnerFullName,
			Label:        "نام و نام خانوادگی",
			TablePattern: tablePat(`نام و نام خانوادگی|نام مالک`),
			Patterns: []*regexp.Regexp{
				plainPat(`نام و نام خانوادگی[\s:：]*` + persianWords(4)),
				plainPat(`نام مالک[\s:：]*` + persianWords(4)),
			},
			Accept: acceptPersianName,
		},
		{
			ID:           FatherName,
			Label:        "نام پدر",
			TablePattern: tablePat(`نام پدر`),
			Patterns: []*regexp.Regexp{
				plainPat(`نام پدر[\s:：]*` + persianWords(3)),
			},
			Accept: acceptPersianName,
		},
		{
			ID:           NationalID,
			Label:        "کد ملی",
			TablePattern: tablePat(`کد ملی|شماره ملی`),
			Patterns: []*regexp.Regexp{
				plainPat(`(?:کد|شماره)\s*ملی[\s:：]*` + digitRun(9, 13)),
			},
			Accept: acceptNationalID,
		},
		{
			ID:           CertificateNo,
			Label:        "شماره قرارداد",
			TablePattern: tablePat(`شماره قرارداد|شماره گواهی|شماره پروانه`),
			Patterns: []*regexp.Regexp{
				plainPat(`شماره\s*(?:قرارداد|گواهی|پروانه)[\s:：]*` + digitRun(3, 18)),
			},
			Accept: acceptCertificateNo,
		},
		{
			ID:           Phone,
			Label:        "شماره تماس",
			TablePattern: tablePat(`شماره تماس|شماره تلفن|تلفن همراه|موبایل`),
			Patterns: []*regexp.Regexp{
				plainPat(`(?:شماره\s*(?:تماس|تلفن)|تلفن\s*همراه|موبایل)[\s:：]*` + digitRun(7, 14)),
			},
			Accept: acceptPhone,
		},
		{
			ID:           PostalCode,
			Label:        "کد پستی",
			TablePattern: tablePat(`کد پستی`),
			Patterns: []*regexp.Regexp{
				plainPat(`کد\s*پستی[\s:：]*` + digitRun(9, 13)),
			},
			Accept: acceptPostalCode,
		},
		{
			ID:           Address,
			Label:        "نشانی",
			TablePattern: tablePat(`نشانی|آدرس|محل سکونت`),
			Patterns: []*regexp.Regexp{
				plainPat(`(?:نشانی|آدرس|محل\s*سکونت)[\s:：]*([\p{Arabic}\x{200C}0-9\x{06F0}-\x{06F9} ،\-]{10,120})`),
			},
			Accept: acceptAddress,
		},
		{
			ID:           Amount,
			Label:        "مبلغ",
			TablePattern: tablePat(`مبلغ قرارداد|مبلغ کل|مبلغ`),
			Patterns: []*regexp.Regexp{
				plainPat(`مبلغ\s*(?:قرارداد|کل)?[\s:：]*((?:` + digitCls + `|[,،])+)`),
			},
			Accept: acceptAmount,
		},
		{
			ID:           StartDate,
			Label:        "تاریخ شروع",
			TablePattern: tablePat(`تاریخ شروع|از تاریخ`),
			Patterns: []*regexp.Regexp{
				plainPat(`(?:از\s*تاریخ|تاریخ\s*شروع)[\s:：]*(` + DateToken + `)`),
			},
			Accept: acceptDate,
		},
		{
			ID:           EndDate,
			Label:        "تاریخ پایان",
			TablePattern: tablePat(`تاریخ پایان|تا تاریخ`),
			Patterns: []*regexp.Regexp{
				plainPat(`(?:تا\s*تاریخ|لغایت|تاریخ\s*پایان)[\s:：]*(` + DateToken + `)`),
			},
			Accept: acceptDate,
		},
	}

	byID := make(map[string]*FieldDefinition, len(defs))
	byLabel := make(map[string]string, len(defs))
	for i := range defs {
		d := &defs[i]
		if _, dup := byID[d.ID]; dup {
			panic(fmt.Sprintf("field: duplicate catalog id %q", d.ID))
		}
		byID[d.ID] = d
		byLabel[d.Label] = d.ID
	}
	return &Catalog{defs: defs, byID: byID, byLabel: byLabel}
}

// Definitions returns the catalog entries in declaration order.
func (c *Catalog) Definitions() []FieldDefinition {
	return c.defs
}

// Get returns the definition for a field id.
func (c *Catalog) Get(id string) (*FieldDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Lookup resolves a header cell from an imported record sheet to a field id.
// Both the stable id and the Persian display label are accepted.
func (c *Catalog) Lookup(header string) (string, bool) {
	if _, ok := c.byID[header]; ok {
		return header, true
	}
	id, ok := c.byLabel[header]
	return id, ok
}
