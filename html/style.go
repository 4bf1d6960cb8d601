package html

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// stopPrefix marks vendor declarations after which the rest of a style
// attribute is not interpreted.
const stopPrefix = "xenforo-"

// property handles one CSS declaration. It may emit opening marks and
// returns the marks that close them.
type property func(s *state, tag, name, value string) string

func noop(*state, string, string, string) string { return "" }

// properties lists the CSS properties the converter understands. Layout
// properties are known so that they are not reported as unknown.
var properties = map[string]property{
	"border":         noop,
	"display":        noop,
	"font-family":    noop,
	"font-size":      noop,
	"font-weight":    fontWeight,
	"margin-left":    noop,
	"padding":        noop,
	"padding-left":   noop,
	"text-align":     noop,
	"vertical-align": noop,
	"width":          noop,
}

func fontWeight(s *state, _, _, value string) string {
	if !isBold(value) {
		return ""
	}
	s.addText("**")
	return "**"
}

func isBold(value string) bool {
	switch value {
	case "bold", "bolder":
		return true
	}
	weight, err := strconv.ParseFloat(value, 64)
	return err == nil && weight >= 700
}

// applyStyle interprets the style attributes in attrs and returns the
// combined closer for the element. Closers are nested, so a later
// declaration's closer comes first.
func (s *state) applyStyle(tag string, attrs []html.Attribute) string {
	var closer string
	for _, a := range attrs {
		if a.Key != "style" {
			continue
		}
		for _, decl := range s.declarations(tag, a.Val) {
			handle, ok := properties[decl.name]
			if !ok {
				s.logger.Debug("unknown css property", "tag", tag, "property", decl.name, "value", decl.value)
			}
			if strings.HasPrefix(decl.name, stopPrefix) {
				break
			}
			if ok {
				closer = handle(s, tag, decl.name, decl.value) + closer
			}
		}
	}
	return closer
}

type declaration struct {
	name  string
	value string
}

// declarations parses an inline style. A malformed declaration is logged
// and skipped; parsing resumes with the next one.
func (s *state) declarations(tag, style string) []declaration {
	var decls []declaration
	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !p.HasParseError() {
				if err := p.Err(); !errors.Is(err, io.EOF) {
					s.logger.Debug("unreadable css", "tag", tag, "style", style, "err", err)
				}
				return decls
			}
			s.logger.Debug("invalid css declaration", "tag", tag, "style", style, "err", p.Err())

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decls = append(decls, declaration{
				name:  strings.ToLower(string(data)),
				value: declarationValue(p.Values()),
			})

		default:
			s.logger.Debug("unexpected css", "tag", tag, "style", style, "data", string(data))
		}
	}
}

// declarationValue joins the value tokens of a declaration, dropping any
// !important flag, and lower-cases the result.
func declarationValue(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	value := strings.TrimSpace(strings.ToLower(b.String()))
	value = strings.TrimSuffix(value, "!important")
	return strings.TrimSpace(value)
}
