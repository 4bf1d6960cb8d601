package ficbot

import (
	"strings"
)

// Tags returns the values of the tags in list that carry prefix, in order.
// A tag "genre:Action" has prefix "genre" and value "Action".
func Tags(list []string, prefix string) []string {
	var values []string
	for _, t := range list {
		if v, ok := strings.CutPrefix(t, prefix+":"); ok {
			values = append(values, v)
		}
	}
	return values
}

// Tag returns the value of the first tag in list that carries prefix.
func Tag(list []string, prefix string) string {
	for _, t := range list {
		if v, ok := strings.CutPrefix(t, prefix+":"); ok {
			return v
		}
	}
	return ""
}

// HasTag reports whether list contains tag exactly.
func HasTag(list []string, tag string) bool {
	for _, t := range list {
		if t == tag {
			return true
		}
	}
	return false
}

// Uniq returns the values of list without duplicates, keeping the first
// occurrence of each.
func Uniq[T comparable](list []T) []T {
	seen := make(map[T]struct{}, len(list))
	out := make([]T, 0, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// FandomFilter reports whether a fic belongs to a set of fandoms.
type FandomFilter func(fic *Fic) bool

// IsFandom returns a filter matching fics whose fandom is name, or that
// are crossovers with or fusions of name. Matching ignores case.
func IsFandom(name string) FandomFilter {
	lc := strings.ToLower(name)
	xover, fusion := "xover:"+lc, "fusion:"+lc
	return func(fic *Fic) bool {
		if strings.ToLower(fic.Fandom) == lc {
			return true
		}
		for _, t := range fic.Tags {
			if t := strings.ToLower(t); t == xover || t == fusion {
				return true
			}
		}
		return false
	}
}

// Or returns a filter matching fics of either f or the named fandom.
func (f FandomFilter) Or(name string) FandomFilter {
	other := IsFandom(name)
	return func(fic *Fic) bool { return f(fic) || other(fic) }
}

// And returns a filter matching fics of both f and the named fandom.
func (f FandomFilter) And(name string) FandomFilter {
	other := IsFandom(name)
	return func(fic *Fic) bool { return f(fic) && other(fic) }
}
