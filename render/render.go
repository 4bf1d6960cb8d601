// Package render builds the chat embeds that summarize fics and authors.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/ficbot"
)

// ratingColors are embed colors per AO3 rating.
var ratingColors = map[string]int{
	"General Audiences":     0x00a000,
	"Teen And Up Audiences": 0x50e050,
	"Mature":                0x303090,
	"Explicit":              0xf0d0f0,
}

// HiddenTagsImage is the target of the hover link that hides the tags of
// explicit fics.
const HiddenTagsImage = "https://shared.by.re-becca.org/empty.png"

// maxAuthorFics limits the fics listed on an author embed.
const maxAuthorFics = 10

// Renderer renders fics and authors as embeds.
type Renderer struct {
	// Converter turns fic summaries into Markdown.
	Converter ficbot.Converter

	// ImageCache maps locally cached art to public URLs.
	ImageCache ficbot.ImageCacheConfig

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger

	subs atomic.Pointer[ficbot.Substitutions]
}

// SetSubstitutions replaces the substitution tables used for linking tags.
// It is safe to call while embeds are being rendered.
func (r *Renderer) SetSubstitutions(subs ficbot.Substitutions) {
	r.subs.Store(&subs)
}

func (r *Renderer) substitutions() ficbot.Substitutions {
	if subs := r.subs.Load(); subs != nil {
		return *subs
	}
	return nil
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

var (
	tagQualifierRE = regexp.MustCompile(`[|].*$`)
	untaggedRE     = regexp.MustCompile(`(?i)^(?:status|series|collection|cn|pov|povgender|ship|friendship|canon|follows|genre|fandom|xover|fusion|meta|rating|rated|character|category|language):|^(?:NSFW|Quest|Snippets)$`)
	freeformRE     = regexp.MustCompile(`^freeform:(?:title:)?`)
	snippetTitleRE = regexp.MustCompile(`^[^:]+: `)
	characterRE    = regexp.MustCompile(`(?i) - Character`)
)

// FicEmbed renders the summary of a fic.
func (r *Renderer) FicEmbed(ctx context.Context, fic *ficbot.Fic) *ficbot.Embed {
	subs := r.substitutions()

	rawTags := make([]string, len(fic.Tags))
	for i, t := range fic.Tags {
		rawTags[i] = tagQualifierRE.ReplaceAllString(t, "")
	}
	rawTags = ficbot.Uniq(rawTags)

	rating := ficbot.Tag(rawTags, "rating")
	isWorm := ficbot.IsFandom("Worm").Or("Ward")(fic)
	isExplicit := ficbot.HasTag(rawTags, "rating:Explicit")
	isNSFW := isExplicit || ficbot.HasTag(rawTags, "NSFW")
	isSnippet := !fic.IsTop() && ficbot.HasTag(rawTags, "Snippets")

	var charLinks ficbot.LinkSet
	if isWorm {
		charLinks = subs.Get(ficbot.SubstChars)
	}

	e := &ficbot.Embed{
		URL:       fic.Link,
		Timestamp: fic.Modified,
		Thumbnail: r.cover(fic),
	}
	if color, ok := ratingColors[rating]; ok {
		e.Color = color
	}

	collection := fic.Collection
	if collection == "" {
		collection = fic.Fandom
	}
	if isNSFW {
		collection += " (NSFW)"
	}
	e.Author = collection

	title := fic.Title
	if isSnippet {
		title = snippetTitleRE.ReplaceAllString(title, "")
	}
	e.Title = ficbot.Truncate(title, ficbot.MaxTitleLength)

	for _, a := range fic.Authors {
		e.AddField("Author", ficbot.MakeLink(ficbot.Truncate(a.Name, 200), a.Link), true)
	}
	if !fic.Created.IsZero() {
		e.AddField("Created on", RelativeDate(fic.Created, r.now()), true)
	}
	e.AddField("Total length", fmt.Sprintf("%s, %s words (%s)",
		Chapters(fic.ChapterCount()), Approx(fic.Words), siteLinks(fic.Links)), true)

	series := ficbot.Tag(rawTags, "follows")
	if fic.SeriesIndex > 1 && fic.Series != "" {
		series = fic.Series
	}
	if series != "" && series != fic.Title {
		addField(e, "Follows", ficbot.Tagify(series, subs.Get(ficbot.SubstFics)))
	}
	if fic.Rewrite != "" && fic.RewriteIndex > 1 {
		addField(e, "Rewrite of", ficbot.Tagify(fic.Rewrite, subs.Get(ficbot.SubstFics)))
	}

	addField(e, "Genre", strings.Join(ficbot.Tags(rawTags, "genre"), ", "))
	addField(e, "Category", ficbot.Strify(ficbot.Tags(rawTags, "category"), subs.Get(ficbot.SubstCats)))
	if fic.Fandom != "" && fic.Fandom != fic.Collection {
		addField(e, "Fandom", fic.Fandom)
	}
	addField(e, "Crossover", ficbot.Strify(ficbot.Tags(rawTags, "xover"), subs.Get(ficbot.SubstXover)))
	addField(e, "Fusion", ficbot.Strify(ficbot.Tags(rawTags, "fusion"), subs.Get(ficbot.SubstXover)))
	addField(e, "Meta-fanfiction of", ficbot.Strify(ficbot.Tags(rawTags, "meta"), subs.Get(ficbot.SubstFics)))
	addField(e, "Series", ficbot.Strify(ficbot.Tags(rawTags, "series"), subs.Get(ficbot.SubstSeries)))

	pov := fic.POV
	if pov == "" {
		pov = strings.Join(ficbot.Tags(rawTags, "povgender"), ",")
	}
	addField(e, "POV", ficbot.Tagify(pov, charLinks))
	addField(e, "Romantic pairing", strings.Join(pairings(fic.OTN, "/", ficbot.Tags(rawTags, "ship"), charLinks), ", "))
	addField(e, "Friendship pairing", strings.Join(pairings(fic.FTN, " & ", ficbot.Tags(rawTags, "friendship"), charLinks), ", "))
	addField(e, "Relationship to Canon", ficbot.Strify(ficbot.Tags(rawTags, "canon"), subs.Get(ficbot.SubstTags)))
	addField(e, "Characters", ficbot.Strify(characters(rawTags), charLinks, subs.Get(ficbot.SubstXover)))
	addField(e, "Rating", rating)
	addField(e, "Content Notes", strings.Join(ficbot.Tags(rawTags, "cn"), ", "))

	if tags := freeTags(rawTags, subs.Get(ficbot.SubstXover)); len(tags) > 0 {
		tagstr := ficbot.Strify(tags, subs.Get(ficbot.SubstTags), charLinks, subs.Get(ficbot.SubstXover))
		if isExplicit {
			tagstr = fmt.Sprintf("[Hover to View](%s %q)", HiddenTagsImage, tagstr)
		}
		e.AddField("Tags", ficbot.Truncate(tagstr, ficbot.MaxFieldValueLength), false)
	}

	e.Description = r.summary(fic, ficbot.MaxDescriptionLength)

	e.Footer = "in-progress"
	if fic.IsComplete() {
		e.Footer = fic.Status
	}
	return e
}

// AuthorEmbed renders the summary of an author and the fics they wrote.
func (r *Renderer) AuthorEmbed(ctx context.Context, author *ficbot.Author, fics []*ficbot.Fic) *ficbot.Embed {
	e := &ficbot.Embed{
		Title: ficbot.Truncate(author.Name, ficbot.MaxTitleLength),
		URL:   author.Link,
	}
	sites := make([]string, 0, len(author.Accounts))
	for _, acct := range author.Accounts {
		if e.Thumbnail == "" && acct.Image != "" {
			e.Thumbnail = acct.Image
		}
		sites = append(sites, ficbot.MakeLink(acct.Name+"@"+ficbot.LinkSite(acct.Link), acct.Link))
	}
	if len(sites) > 0 {
		e.AddField("Active on:", ficbot.NiceList(sites), false)
	}

	fics = append([]*ficbot.Fic(nil), fics...)
	sort.SliceStable(fics, func(i, j int) bool {
		return fics[i].Modified.After(fics[j].Modified)
	})
	if len(fics) == 0 {
		return e
	}

	var fandoms []string
	for _, fic := range fics {
		if fic.Fandom != "" {
			fandoms = append(fandoms, fic.Fandom)
		}
	}
	sort.Strings(fandoms)
	fandoms = ficbot.Uniq(fandoms)

	var entries []ficbot.EmbedField
	n := 0
	for _, fic := range fics {
		chapters := fic.ChapterCount()
		if chapters == 0 {
			continue
		}
		n++
		if n > maxAuthorFics {
			continue
		}
		link := ficbot.NormalizeLink(fic.Link)
		status := "in-progress"
		if fic.IsComplete() {
			status = fic.Status
		}
		prefix := fmt.Sprintf("**%s: %s**\n**%s, %s, %s words, last updated %s**",
			ficbot.MakeLink(ficbot.LinkSite(link), link), link,
			status, Chapters(chapters), Approx(fic.Words), RelativeDate(fic.Modified, r.now()))
		value := prefix
		if desc := r.summary(fic, ficbot.MaxFieldValueLength-1-len([]rune(prefix))); desc != "" {
			value += "\n" + desc
		}
		title := fic.Title
		if !fic.IsTop() && ficbot.HasTag(fic.Tags, "Snippets") {
			title = snippetTitleRE.ReplaceAllString(title, "")
		}
		entries = append(entries, ficbot.EmbedField{
			Name:  ficbot.Truncate(fmt.Sprintf("%d. %s", n, title), ficbot.MaxTitleLength),
			Value: value,
		})
	}
	e.AddField("Has written:", fmt.Sprintf("%d fics for %s", n, ficbot.NiceList(fandoms)), false)
	e.Fields = append(e.Fields, entries...)
	return e
}

// summary converts the fic's HTML summary and truncates it to max
// characters. Conversion failures are logged and yield no summary.
func (r *Renderer) summary(fic *ficbot.Fic, max int) string {
	if fic.Comments == "" || r.Converter == nil || max <= 0 {
		return ""
	}
	md, err := r.Converter.Convert(fic.Comments)
	if err != nil {
		r.logger().Warn("convert summary", "fic", fic.Key(), "err", err)
		return ""
	}
	return ficbot.Truncate(strings.TrimSpace(md), max)
}

// cover returns the thumbnail for a fic, preferring cached art.
func (r *Renderer) cover(fic *ficbot.Fic) string {
	if len(fic.ArtFiles) > 0 && r.ImageCache.Dir != "" && r.ImageCache.URL != "" {
		rel, err := filepath.Rel(r.ImageCache.Dir, fic.ArtFiles[0])
		if err == nil && !strings.HasPrefix(rel, "..") {
			return strings.TrimRight(r.ImageCache.URL, "/") + "/" + path.Clean(filepath.ToSlash(rel))
		}
	}
	if fic.Cover != "" {
		return fic.Cover
	}
	return fic.Art
}

// addField adds an inline field unless value is empty.
func addField(e *ficbot.Embed, name, value string) {
	if value == "" {
		return
	}
	e.AddField(name, ficbot.Truncate(value, ficbot.MaxFieldValueLength), true)
}

// siteLinks renders one link per site, keeping the first link seen for
// each site.
func siteLinks(links []string) string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range links {
		l = strings.TrimPrefix(l, "url:")
		site := ficbot.LinkSite(l)
		if seen[site] {
			continue
		}
		seen[site] = true
		out = append(out, ficbot.MakeLink(site, l))
	}
	return strings.Join(out, ", ")
}

// pairings renders the fic's main pairing, joined with sep, followed by
// the pairing tags.
func pairings(main []string, sep string, tagged []string, chars ficbot.LinkSet) []string {
	names := make([]string, len(main))
	for i, n := range main {
		names[i] = ficbot.Tagify(n, chars)
	}
	var out []string
	if p := strings.Join(names, sep); p != "" {
		out = append(out, p)
	}
	for _, t := range tagged {
		if t := ficbot.Tagify(t, chars); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func characters(rawTags []string) []string {
	var out []string
	for _, c := range ficbot.Tags(rawTags, "character") {
		c = strings.Replace(c, " (Worm)", "", 1)
		c = characterRE.ReplaceAllString(c, "")
		out = append(out, c)
	}
	return out
}

// freeTags returns the tags not rendered in a field of their own.
func freeTags(rawTags []string, xover ficbot.LinkSet) []string {
	var out []string
	for _, t := range rawTags {
		if untaggedRE.MatchString(t) || t == "skip-sfw" {
			continue
		}
		t = freeformRE.ReplaceAllString(t, "")
		if strings.Contains(t, "altpower:") {
			t = ficbot.Tagify(t, xover)
		}
		out = append(out, t)
	}
	return out
}
