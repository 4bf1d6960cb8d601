package html

// shape selects how an element affects the line buffer.
type shape int

const (
	// shapeInline formats text within the current line.
	shapeInline shape = iota
	// shapeBlock puts the element on lines of its own.
	shapeBlock
	// shapeParagraph is a block separated from earlier output by a blank line.
	shapeParagraph
	// shapeIgnore is transparent: children are still processed.
	shapeIgnore
	// shapeSuppress drops the element and everything inside it.
	shapeSuppress
	// shapeBreak ends the current line.
	shapeBreak
	// shapeAnchor renders [text](href).
	shapeAnchor
	// shapeImage renders [!alt](src).
	shapeImage
)

// element is one row of the tag table.
type element struct {
	shape   shape
	open    string
	close   string
	noStyle bool
}

func inline(open, closing string) element {
	return element{shape: shapeInline, open: open, close: closing}
}

func block(open, closing string) element {
	return element{shape: shapeBlock, open: open, close: closing}
}

func paragraph(open, closing string) element {
	return element{shape: shapeParagraph, open: open, close: closing}
}

var (
	ignore   = element{shape: shapeIgnore}
	suppress = element{shape: shapeSuppress}
)

// elements maps lower-case tag names to their behavior. Tags missing from
// the table are logged and their text passes through unformatted.
var elements = map[string]element{
	"a":          {shape: shapeAnchor},
	"abbr":       inline("", ""),
	"acronym":    inline("", ""),
	"address":    block("*", "*"),
	"article":    block("", ""),
	"aside":      block("", ""),
	"b":          inline("**", "**"),
	"big":        ignore,
	"blockquote": block("> ", ""),
	"body":       ignore,
	"br":         {shape: shapeBreak},
	"caption":    inline("", ""),
	"center":     inline("", ""),
	"cite":       inline("*", "*"),
	"code":       block("`", "`"),
	"col":        inline("", ""),
	"colgroup":   inline("", ""),
	"dd":         block("", ""),
	"del":        inline("~~", "~~"),
	"dfn":        inline("", ""),
	"div":        block("", ""),
	"dl":         block("", ""),
	"dt":         block("**", "**"),
	"em":         inline("*", "*"),
	"figcaption": block("", ""),
	"figure":     block("", ""),
	"footer":     block("", ""),
	"h1":         paragraph("# ", ""),
	"h2":         paragraph("## ", ""),
	"h3":         paragraph("### ", ""),
	"h4":         paragraph("#### ", ""),
	"h5":         paragraph("##### ", ""),
	"h6":         paragraph("###### ", ""),
	"head":       ignore,
	"header":     block("", ""),
	"hgroup":     ignore,
	"hr":         {shape: shapeBlock, open: "---", noStyle: true},
	"html":       ignore,
	"i":          inline("*", "*"),
	"img":        {shape: shapeImage},
	"ins":        inline("*", "*"),
	"kbd":        inline("`", "`"),
	"li":         {shape: shapeBlock, open: "* ", noStyle: true},
	"link":       suppress,
	"menu":       block("", ""),
	"ol":         block("", ""),
	"output":     inline("", ""),
	"p":          paragraph("", ""),
	"pre":        block("```", "```"),
	"q":          inline("“", "”"),
	"rp":         ignore,
	"rt":         ignore,
	"ruby":       ignore,
	"s":          inline("~~", "~~"),
	"samp":       inline("`", "`"),
	"script":     suppress,
	"section":    block("", ""),
	"small":      ignore,
	"source":     suppress,
	"span":       inline("", ""),
	"strike":     inline("~~", "~~"),
	"strong":     inline("**", "**"),
	"style":      suppress,
	"table":      inline("", ""),
	"tbody":      ignore,
	"td":         inline("", ""),
	"tfoot":      ignore,
	"th":         inline("", ""),
	"thead":      ignore,
	"time":       ignore,
	"title":      suppress,
	"tr":         inline("", ""),
	"u":          ignore,
	"ul":         block("", ""),
	"var":        inline("*", "*"),
	"wbr":        ignore,
}
