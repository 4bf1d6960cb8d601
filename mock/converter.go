package mock

import "github.com/fwojciec/ficbot"

var _ ficbot.Converter = (*Converter)(nil)

// Converter is a mock implementation of ficbot.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
