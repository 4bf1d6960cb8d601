package ficbot

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content, such as a fic summary, into the
	// Markdown dialect rendered by chat clients.
	Convert(html string) (string, error)
}
