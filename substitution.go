package ficbot

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SubstitutionKind names one table of link substitutions.
type SubstitutionKind string

// Substitution tables.
const (
	SubstXover  SubstitutionKind = "xover"
	SubstFics   SubstitutionKind = "fics"
	SubstChars  SubstitutionKind = "chars"
	SubstTags   SubstitutionKind = "tags"
	SubstCats   SubstitutionKind = "cats"
	SubstSeries SubstitutionKind = "series"
)

// SubstitutionKinds lists every substitution table.
var SubstitutionKinds = []SubstitutionKind{
	SubstXover, SubstFics, SubstChars, SubstTags, SubstCats, SubstSeries,
}

// LinkSet maps phrases to the URL they should link to.
type LinkSet map[string]string

// Substitutions holds every substitution table.
type Substitutions map[SubstitutionKind]LinkSet

// Get returns the table of the given kind. Missing tables are nil and
// behave as empty.
func (s Substitutions) Get(kind SubstitutionKind) LinkSet {
	return s[kind]
}

// MakeLink renders a Markdown link.
func MakeLink(label, href string) string {
	return "[" + label + "](" + href + ")"
}

// Tagify turns every whole-word occurrence of a phrase from sets into a
// Markdown link to the phrase's URL. Longer phrases win over shorter ones,
// and text already inside a link is left alone.
func Tagify(thing string, sets ...LinkSet) string {
	for _, set := range sets {
		keys := make([]string, 0, len(set))
		for k := range set {
			if k != "" {
				keys = append(keys, k)
			}
		}
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) > len(keys[j])
			}
			return keys[i] < keys[j]
		})
		for _, k := range keys {
			thing = linkPhrase(thing, k, ShortLink(set[k]))
		}
	}
	return thing
}

// Strify tagifies each of things and joins them with commas.
func Strify(things []string, sets ...LinkSet) string {
	out := make([]string, len(things))
	for i, t := range things {
		out[i] = Tagify(t, sets...)
	}
	return strings.Join(out, ", ")
}

// linkPhrase links the whole-word occurrences of phrase outside existing
// Markdown links.
func linkPhrase(s, phrase, href string) string {
	var b strings.Builder
	for len(s) > 0 {
		start, end := nextLink(s)
		if start < 0 {
			b.WriteString(replaceWords(s, phrase, href))
			break
		}
		b.WriteString(replaceWords(s[:start], phrase, href))
		b.WriteString(s[start:end])
		s = s[end:]
	}
	return b.String()
}

// nextLink returns the bounds of the first [label](href) in s.
func nextLink(s string) (int, int) {
	offset := 0
	for {
		open := strings.IndexByte(s[offset:], '[')
		if open < 0 {
			return -1, -1
		}
		open += offset
		mid := strings.Index(s[open:], "](")
		if mid < 0 {
			return -1, -1
		}
		mid += open
		closing := strings.IndexByte(s[mid:], ')')
		if closing < 0 {
			return -1, -1
		}
		if !strings.ContainsRune(s[open+1:mid], '[') {
			return open, mid + closing + 1
		}
		offset = open + 1
	}
}

func replaceWords(s, phrase, href string) string {
	var b strings.Builder
	for {
		i := indexWord(s, phrase)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(MakeLink(phrase, href))
		s = s[i+len(phrase):]
	}
}

// indexWord finds phrase in s where it is not glued to surrounding word
// characters.
func indexWord(s, phrase string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], phrase)
		if i < 0 {
			return -1
		}
		i += offset
		j := i + len(phrase)
		first, _ := utf8.DecodeRuneInString(phrase)
		last, _ := utf8.DecodeLastRuneInString(phrase)
		before, _ := utf8.DecodeLastRuneInString(s[:i])
		after, _ := utf8.DecodeRuneInString(s[j:])
		okBefore := i == 0 || !isWordRune(before) || !isWordRune(first)
		okAfter := j == len(s) || !isWordRune(after) || !isWordRune(last)
		if okBefore && okAfter {
			return i
		}
		offset = i + 1
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
