package mock

import "github.com/fwojciec/ficbot"

var _ ficbot.LinkFilter = (*LinkFilter)(nil)

// LinkFilter is a mock implementation of ficbot.LinkFilter.
type LinkFilter struct {
	AddFn  func(link string)
	TestFn func(link string) bool
}

func (f *LinkFilter) Add(link string) {
	f.AddFn(link)
}

func (f *LinkFilter) Test(link string) bool {
	return f.TestFn(link)
}
