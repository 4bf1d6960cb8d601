package ficbot

import (
	"context"
	"strings"
	"time"
)

// Fic is a fan-fiction work as recorded in the fic database.
type Fic struct {
	Identifiers []string  `json:"identifiers"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Links       []string  `json:"links"`
	Cover       string    `json:"cover,omitempty"`
	Art         string    `json:"art,omitempty"`
	ArtFiles    []string  `json:"artFiles,omitempty"`
	Fandom      string    `json:"fandom,omitempty"`
	Collection  string    `json:"collection,omitempty"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`

	// Author and AuthorURL are the single-author form used by older
	// records. EnsureAuthors folds them into Authors.
	Author    string    `json:"author,omitempty"`
	AuthorURL string    `json:"authorurl,omitempty"`
	Authors   []*Author `json:"authors,omitempty"`

	// Comments is the work's summary as HTML.
	Comments string    `json:"comments,omitempty"`
	Status   string    `json:"status,omitempty"`
	Tags     []string  `json:"tags"`
	Words    int       `json:"words"`
	Chapters []Chapter `json:"chapters,omitempty"`

	Series       string   `json:"series,omitempty"`
	SeriesIndex  int      `json:"series_index,omitempty"`
	Rewrite      string   `json:"rewrite,omitempty"`
	RewriteIndex int      `json:"rewrite_index,omitempty"`
	OTN          []string `json:"otn,omitempty"`
	FTN          []string `json:"ftn,omitempty"`
	POV          string   `json:"pov,omitempty"`
}

// Chapter is one entry of a fic's table of contents.
type Chapter struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
	Type string `json:"type,omitempty"`
}

// Fic status values with special meaning when rendering.
const (
	StatusComplete = "complete"
	StatusOneShot  = "one-shot"
)

// Validate returns an error if the fic cannot be stored.
func (f *Fic) Validate() error {
	if f.Link == "" && len(f.Links) == 0 {
		return Errorf(EINVALID, "fic link required")
	}
	return nil
}

// Key returns the identifier the fic is stored under: its first url:
// identifier, else its first identifier, else its link.
func (f *Fic) Key() string {
	for _, id := range f.Identifiers {
		if strings.HasPrefix(id, "url:") {
			return id
		}
	}
	if len(f.Identifiers) > 0 {
		return f.Identifiers[0]
	}
	return "url:" + f.Link
}

// AllLinks returns the fic's links without url: prefixes, primary link
// first and without duplicates.
func (f *Fic) AllLinks() []string {
	links := make([]string, 0, len(f.Links)+1)
	if f.Link != "" {
		links = append(links, f.Link)
	}
	for _, l := range f.Links {
		links = append(links, strings.TrimPrefix(l, "url:"))
	}
	return Uniq(links)
}

// EnsureAuthors fills Authors from the legacy Author fields when needed.
func (f *Fic) EnsureAuthors() {
	if len(f.Authors) > 0 {
		return
	}
	if f.Author != "" {
		f.Authors = []*Author{{Name: f.Author, Link: f.AuthorURL}}
		return
	}
	f.Authors = []*Author{}
}

// IsTop reports whether the fic is the top-level entry of a collection.
func (f *Fic) IsTop() bool {
	for _, id := range f.Identifiers {
		if strings.HasPrefix(id, "top:") {
			return true
		}
	}
	return false
}

// IsComplete reports whether the fic will receive no further chapters.
func (f *Fic) IsComplete() bool {
	return f.Status == StatusComplete || f.Status == StatusOneShot
}

// ChapterCount returns the number of story chapters. Fics without a table
// of contents count as a single chapter.
func (f *Fic) ChapterCount() int {
	if f.Chapters == nil {
		return 1
	}
	n := 0
	for _, ch := range f.Chapters {
		if ch.Type == "" || ch.Type == "chapter" {
			n++
		}
	}
	return n
}

// Normalize returns a copy of a freshly fetched fic in the shape of a
// database record: fandom and status come from tags, missing dates fall
// back on each other and the summary moves into Comments.
func (f *Fic) Normalize() *Fic {
	fandom := Tag(f.Tags, "fandom")
	if fandom == "" {
		fandom = f.Fandom
	}
	status := Tag(f.Tags, "status")
	if status == "" {
		status = f.Status
	}
	created, modified := f.Created, f.Modified
	if created.IsZero() {
		created = modified
	}
	if modified.IsZero() {
		modified = created
	}

	fic := &Fic{
		Identifiers: []string{},
		Title:       f.Title,
		Link:        f.Link,
		Links:       []string{f.Link},
		Cover:       f.Cover,
		Art:         f.Art,
		ArtFiles:    []string{},
		Fandom:      fandom,
		Collection:  fandom,
		Created:     created,
		Modified:    modified,
		Author:      f.Author,
		AuthorURL:   f.AuthorURL,
		Authors:     f.Authors,
		Comments:    f.Comments,
		Status:      status,
		Tags:        f.Tags,
		Words:       f.Words,
		Chapters:    f.Chapters,
		OTN:         []string{},
		FTN:         []string{},
	}
	fic.EnsureAuthors()
	return fic
}

// Author is a writer known to the fic database.
type Author struct {
	Name     string     `json:"name"`
	Link     string     `json:"link"`
	Accounts []*Account `json:"account,omitempty"`
}

// Account is an author's profile on one site.
type Account struct {
	Name  string `json:"name"`
	Link  string `json:"link"`
	Image string `json:"image,omitempty"`
}

// Validate returns an error if the author cannot be stored.
func (a *Author) Validate() error {
	if a.Link == "" {
		return Errorf(EINVALID, "author link required")
	}
	if a.Name == "" {
		return Errorf(EINVALID, "author name required")
	}
	return nil
}

// Stats summarizes the contents of the fic database.
type Stats struct {
	Links   int
	Fics    int
	Authors int
}

// FicService represents a service for managing fics and authors.
type FicService interface {
	// CreateFic stores a fic and indexes all of its links.
	// Existing records with the same key are replaced.
	CreateFic(ctx context.Context, fic *Fic) error

	// ReplaceFics replaces the whole fic collection. Records whose content
	// did not change are left untouched. Returns the number of records
	// written.
	ReplaceFics(ctx context.Context, fics []*Fic) (int, error)

	// ReplaceAuthors replaces the whole author collection.
	ReplaceAuthors(ctx context.Context, authors []*Author) error

	// FindFicByLink retrieves a fic by one of its normalized links.
	// Returns ENOTFOUND if no fic has the link.
	FindFicByLink(ctx context.Context, link string) (*Fic, error)

	// FindFicsByAuthor retrieves the fics credited to an author link,
	// most recently modified first.
	FindFicsByAuthor(ctx context.Context, authorLink string) ([]*Fic, error)

	// FindAuthors retrieves the authors whose link or name matches query.
	FindAuthors(ctx context.Context, query string) ([]*Author, error)

	// Stats returns the number of links, fics and authors stored.
	Stats(ctx context.Context) (Stats, error)
}

// Fetcher retrieves metadata about a fic from the site hosting it.
type Fetcher interface {
	// FetchFic downloads metadata for the fic at link.
	FetchFic(ctx context.Context, link string) (*Fic, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until a request to the domain is allowed or the context
	// is canceled.
	Wait(ctx context.Context, domain string) error
}

// LinkFilter remembers a set of links. Test may report links that were
// never added, but never misses one that was.
type LinkFilter interface {
	Add(link string)
	Test(link string) bool
}
