package ficbot

import (
	"net/url"
	"regexp"
	"strings"
)

// xenForoHosts are the XenForo forums whose thread and post links are
// recognized.
var xenForoHosts = []string{
	"forums.spacebattles.com",
	"forums.sufficientvelocity.com",
	"forum.questionablequesting.com",
	"questionablequesting.com",
}

// siteMatchers match the part of a supported link that identifies a work.
var siteMatchers = []string{
	`archiveofourown[.]org/works/\d+`,
	`www[.]fanfiction[.]net/s/\d+`,
	`(?:` + quoteAll(xenForoHosts) + `)/(?:threads|posts)/[^/\s]*\d+`,
	`www[.]parahumans[.]net/?`,
	`parahumans[.]wordpress[.]com/?`,
	`seananmcguire[.]com`,
	`en[.]wikipedia[.]org/wiki/\w+`,
}

var linkRE = regexp.MustCompile(`https?://(?:` + strings.Join(siteMatchers, "|") + `)`)

func quoteAll(hosts []string) string {
	quoted := make([]string, len(hosts))
	for i, h := range hosts {
		quoted[i] = regexp.QuoteMeta(h)
	}
	return strings.Join(quoted, "|")
}

// FindLinks returns the links to supported sites found in text, in the
// order they appear. Each link is cut after the part identifying the work.
func FindLinks(text string) []string {
	return linkRE.FindAllString(text, -1)
}

// HasLinks reports whether text contains a link to a supported site.
func HasLinks(text string) bool {
	return linkRE.MatchString(text)
}

// LinkSite returns the short label used for the site hosting link.
func LinkSite(link string) string {
	switch {
	case strings.Contains(link, "spacebattles"):
		return "SB"
	case strings.Contains(link, "sufficientvelocity"):
		return "SV"
	case strings.Contains(link, "questionablequesting"):
		return "QQ"
	case strings.Contains(link, "archiveofourown"):
		return "AO3"
	case strings.Contains(link, "fanfiction.net"):
		return "FF"
	case strings.Contains(link, "wattpad"):
		return "wattpad"
	}
	return "link"
}

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// shortLinkRules shorten forum, AO3 and FanFiction.net links to their
// canonical form. Order matters: post anchors are resolved before thread
// slugs are dropped.
var shortLinkRules = []rewrite{
	{regexp.MustCompile(`/threads/.*#post-(\d+)`), "/posts/$1"},
	{regexp.MustCompile(`/threads/(?:[^./]+[.])?(\d+)`), "/threads/$1"},
	{regexp.MustCompile(`/members/(?:[^./]+[.])?(\d+)/?`), "/members/$1"},
	{regexp.MustCompile(`/works/(\d+)/chapters/\d+/?$`), "/works/$1"},
	{regexp.MustCompile(`/$`), ""},
	{regexp.MustCompile(`forum[.]question`), "question"},
	{regexp.MustCompile(`//fanfiction[.]net`), "//www.fanfiction.net"},
	{regexp.MustCompile(`/s/(\d+)(/\d+)?(?:/.*)?$`), "/s/$1$2"},
	{regexp.MustCompile(`forums[.]sufficientvelocity`), "sufficientvelocity"},
}

// ShortLink returns the shortest stable form of a link.
func ShortLink(link string) string {
	for _, r := range shortLinkRules {
		link = r.re.ReplaceAllString(link, r.repl)
	}
	return link
}

var chapterRE = regexp.MustCompile(`^(https://www[.]fanfiction[.]net/s/\d+)/\d+$`)

// NormalizeLink returns the form of link used to index and look up fics:
// https, no url: prefix, no fragment except forum post anchors, and no
// chapter suffix.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(strings.TrimPrefix(link, "url:"))
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		u.Scheme = "https"
		u.RawQuery = ""
		if !strings.HasPrefix(u.Fragment, "post-") {
			u.Fragment = ""
		}
		link = u.String()
	}
	link = ShortLink(link)
	return chapterRE.ReplaceAllString(link, "$1")
}

// Host returns the host of link, or an empty string if it has none.
func Host(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
