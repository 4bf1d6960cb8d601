package html

import (
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// state is everything one conversion mutates. It is created per call and
// discarded once the Markdown has been joined.
type state struct {
	logger *slog.Logger

	output []string
	line   strings.Builder

	// closers holds, per tag name, the style-driven closing marks of the
	// currently open elements with that name, innermost last.
	closers map[string][]string

	// links holds the destinations of the open anchors, innermost last.
	// An empty entry is an anchor that produced no link syntax.
	links []string

	accumulating bool
}

func newState(logger *slog.Logger) *state {
	return &state{
		logger:       logger,
		closers:      make(map[string][]string),
		accumulating: true,
	}
}

// addText appends text to the line buffer unless text is suppressed.
func (s *state) addText(text string) {
	if !s.accumulating {
		return
	}
	s.line.WriteString(text)
}

// currentLine returns the buffered line with whitespace runs collapsed and
// the ends trimmed. The buffer itself is left as is.
func (s *state) currentLine() string {
	return strings.Join(strings.Fields(s.line.String()), " ")
}

// endLine moves the current line, even an empty one, to the output.
func (s *state) endLine() {
	s.output = append(s.output, s.currentLine())
	s.line.Reset()
}

// flush ends the current line if it has any content.
func (s *state) flush() {
	if s.currentLine() != "" {
		s.endLine()
	}
}

// finish flushes the buffer and joins the output. Trailing blank lines
// collapse into a single final newline.
func (s *state) finish() string {
	s.endLine()
	return strings.TrimRight(strings.Join(s.output, "\n"), "\n") + "\n"
}

func (s *state) start(tag string, attrs []html.Attribute) {
	el, ok := elements[tag]
	if !ok {
		s.logger.Debug("unknown tag", "tag", tag, "attrs", formatAttrs(attrs))
		return
	}

	switch el.shape {
	case shapeInline:
		s.openStyle(el, tag, attrs)
		s.addText(el.open)

	case shapeBlock:
		s.flush()
		s.openStyle(el, tag, attrs)
		s.addText(el.open)

	case shapeParagraph:
		s.flush()
		if n := len(s.output); n > 0 && s.output[n-1] != "" {
			s.endLine()
		}
		s.openStyle(el, tag, attrs)
		s.addText(el.open)

	case shapeSuppress:
		s.accumulating = false

	case shapeBreak:
		s.endLine()

	case shapeAnchor:
		href, ok := attr(attrs, "href")
		if !ok || href == "" {
			s.links = append(s.links, "")
			return
		}
		s.links = append(s.links, href)
		s.addText("[")

	case shapeImage:
		src, ok := attr(attrs, "src")
		if !ok {
			s.logger.Debug("image without src", "attrs", formatAttrs(attrs))
			return
		}
		alt, _ := attr(attrs, "alt")
		s.addText("[!" + alt + "](" + src + ")")
	}
}

func (s *state) end(tag string) {
	el, ok := elements[tag]
	if !ok {
		s.logger.Debug("unknown end tag", "tag", tag)
		return
	}

	switch el.shape {
	case shapeInline:
		s.addText(el.close)
		s.closeStyle(el, tag)

	case shapeBlock:
		s.addText(el.close)
		s.closeStyle(el, tag)
		s.flush()

	case shapeParagraph:
		s.addText(el.close)
		s.closeStyle(el, tag)
		if s.currentLine() != "" {
			s.endLine()
			s.endLine()
		} else if n := len(s.output); n > 0 && s.output[n-1] != "" {
			s.endLine()
		}

	case shapeSuppress:
		s.accumulating = true

	case shapeAnchor:
		n := len(s.links)
		if n == 0 {
			return
		}
		href := s.links[n-1]
		s.links = s.links[:n-1]
		if href != "" {
			s.addText("](" + href + ")")
		}
	}
}

// openStyle pushes the element's style-driven closer, emitting any opening
// marks the style requires.
func (s *state) openStyle(el element, tag string, attrs []html.Attribute) {
	if el.noStyle {
		return
	}
	s.closers[tag] = append(s.closers[tag], s.applyStyle(tag, attrs))
}

// closeStyle pops and emits the closer pushed by the matching openStyle.
// End tags without a matching start are tolerated.
func (s *state) closeStyle(el element, tag string) {
	if el.noStyle {
		return
	}
	stack := s.closers[tag]
	n := len(stack)
	if n == 0 {
		return
	}
	closer := stack[n-1]
	s.closers[tag] = stack[:n-1]
	s.addText(closer)
}

// attr returns the value of the first attribute called name.
func attr(attrs []html.Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func formatAttrs(attrs []html.Attribute) string {
	var b strings.Builder
	for i, a := range attrs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(a.Val))
	}
	return b.String()
}
