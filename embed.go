package ficbot

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Limits imposed by chat clients on embed content, in characters.
const (
	MaxTitleLength       = 256
	MaxFieldValueLength  = 1024
	MaxDescriptionLength = 2048
)

// Embed is a rich message summarizing a fic or an author.
type Embed struct {
	Title       string
	URL         string
	Author      string
	Description string
	Color       int
	Thumbnail   string
	Timestamp   time.Time
	Fields      []EmbedField
	Footer      string
}

// EmbedField is a titled block of text within an Embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// AddField appends a field to the embed.
func (e *Embed) AddField(name, value string, inline bool) {
	e.Fields = append(e.Fields, EmbedField{Name: name, Value: value, Inline: inline})
}

// Field returns the value of the first field called name.
func (e *Embed) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Truncate shortens s to at most n characters, marking the cut with an
// ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

// NiceList joins items as "a, b and c".
func NiceList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " and " + items[last]
}
