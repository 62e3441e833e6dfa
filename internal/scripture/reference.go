package scripture

import "fmt"

// DefaultBaseURL is the collation interface the generated links point to.
const DefaultBaseURL = "https://ebible.gr/collate"

// Reference is a fully resolved citation: canonical book code, chapter and
// verse, with VerseEnd carrying the end of a simple verse range. For a
// single verse VerseEnd equals Verse.
type Reference struct {
	Book     string
	Chapter  int
	Verse    int
	VerseEnd int
}

// IsRange reports whether the reference spans more than one verse.
func (r Reference) IsRange() bool { return r.VerseEnd > r.Verse }

// Target returns the canonical path segment, e.g. "luk.6.14".
// A range anchors on its start verse; the range end widens only the
// hyperlinked span, never the target.
func (r Reference) Target() string {
	return fmt.Sprintf("%s.%d.%d", r.Book, r.Chapter, r.Verse)
}

// URL builds the destination for the reference under base, which must not
// end in a slash. An empty base falls back to DefaultBaseURL.
func (r Reference) URL(base string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "/" + r.Target()
}

// String renders the reference for logs, including the range end when
// present.
func (r Reference) String() string {
	if r.IsRange() {
		return fmt.Sprintf("%s.%d.%d-%d", r.Book, r.Chapter, r.Verse, r.VerseEnd)
	}
	return r.Target()
}
