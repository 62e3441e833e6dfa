// Package scripture holds the static New Testament book table and the
// canonical reference type used to build collation URLs.
package scripture

import "strings"

// abbrevToCode maps the abbreviation spellings that occur in the lexicon to
// canonical three-letter lowercase book codes. Lookup is case-insensitive;
// keys are stored lowercase. The table is fixed configuration data: it is
// never mutated after init.
var abbrevToCode = map[string]string{
	"mt": "mat", "mat": "mat",
	"mk": "mrk", "mrk": "mrk",
	"lk": "luk", "luk": "luk",
	"jn": "jhn", "jhn": "jhn",
	"act": "act",
	"rom": "rom",
	"1co": "1co", "2co": "2co",
	"gal": "gal", "eph": "eph", "php": "php", "col": "col",
	"1th": "1th", "2th": "2th",
	"1ti": "1ti", "2ti": "2ti", "tit": "tit", "phm": "phm",
	"heb": "heb", "jas": "jas",
	"1pe": "1pe", "2pe": "2pe",
	"1jn": "1jn", "2jn": "2jn", "3jn": "3jn",
	"jud": "jud",
	"rev": "rev",
}

// codes is the set of valid canonical book codes.
var codes = func() map[string]bool {
	m := make(map[string]bool, len(abbrevToCode))
	for _, c := range abbrevToCode {
		m[c] = true
	}
	return m
}()

// LookupAbbrev resolves a book abbreviation to its canonical code.
// Unknown abbreviations report ok=false and are treated as ordinary text by
// the caller; they are never an error.
func LookupAbbrev(abbrev string) (code string, ok bool) {
	code, ok = abbrevToCode[strings.ToLower(abbrev)]
	return code, ok
}

// IsCode reports whether code is one of the canonical book codes.
func IsCode(code string) bool { return codes[code] }

// MaxAbbrevLen is the length of the longest abbreviation in the table.
// The tokenizer uses it to bound candidate letter runs.
const MaxAbbrevLen = 3
