// Package embed turns saved content into a render descriptor for clients.
//
// Each content type has one Renderer. The API resolves the descriptor once
// per item so clients do not parse provider URLs themselves.
package embed

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"

	"github.com/secondbrain/brain-server/internal/domain"
)

// Kind tells the client which element to build.
type Kind string

// Descriptor kinds.
const (
	KindIframe     Kind = "iframe"
	KindBlockquote Kind = "blockquote"
	KindImage      Kind = "image"
	KindText       Kind = "text"
	KindAnchor     Kind = "anchor"
	KindNone       Kind = "none"
)

// Embed describes how to render one content item.
type Embed struct {
	Kind Kind `json:"kind" doc:"Element to render"`
	// Provider names the third party widget for iframes and blockquotes.
	Provider string `json:"provider,omitempty" doc:"Widget provider (youtube, spotify, twitter, instagram)"`
	Src      string `json:"src,omitempty" doc:"iframe or image source"`
	Href     string `json:"href,omitempty" doc:"Original URL"`
	// Host is the punycode host of Href, safe to display.
	Host string `json:"host,omitempty" doc:"ASCII host of the original URL"`
	Text string `json:"text,omitempty" doc:"Text body or alt text"`
}

// Item is the subset of content a renderer needs.
type Item struct {
	Title       string
	URL         string
	Description string
}

// Renderer builds the descriptor for one content type.
type Renderer interface {
	Render(item Item) Embed
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(item Item) Embed

// Render calls f(item).
func (f RendererFunc) Render(item Item) Embed { return f(item) }

var renderers = map[domain.ContentType]Renderer{
	domain.ContentYouTube:   RendererFunc(renderYouTube),
	domain.ContentSpotify:   RendererFunc(renderSpotify),
	domain.ContentTweet:     RendererFunc(renderTweet),
	domain.ContentInstagram: RendererFunc(renderInstagram),
	domain.ContentImage:     RendererFunc(renderImage),
	domain.ContentNote:      RendererFunc(renderNote),
	domain.ContentLink:      RendererFunc(renderLink),
}

// For returns the descriptor for an item of type t. Unknown types render as links.
func For(t domain.ContentType, item Item) Embed {
	r, ok := renderers[t]
	if !ok {
		r = RendererFunc(renderLink)
	}
	return r.Render(item)
}

// ForContent returns the descriptor for c.
func ForContent(c *domain.Content) Embed {
	return For(c.Type, Item{Title: c.Title, URL: c.URL, Description: c.Description})
}

var spotifyRe = regexp.MustCompile(`spotify\.com/(track|album|playlist|artist)/([a-zA-Z0-9]+)`)

func renderYouTube(item Item) Embed {
	if item.URL == "" {
		return Embed{Kind: KindNone}
	}
	id := youTubeID(item.URL)
	if id == "" {
		return renderLink(item)
	}
	return Embed{
		Kind:     KindIframe,
		Provider: "youtube",
		Src:      "https://www.youtube.com/embed/" + url.PathEscape(id),
		Href:     item.URL,
		Host:     Host(item.URL),
		Text:     fallback(item.Title, "YouTube video"),
	}
}

// youTubeID takes the v= parameter when present, else the last path segment.
func youTubeID(raw string) string {
	if _, after, ok := strings.Cut(raw, "v="); ok {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	return path[strings.LastIndex(path, "/")+1:]
}

func renderSpotify(item Item) Embed {
	if item.URL == "" {
		return Embed{Kind: KindNone}
	}
	m := spotifyRe.FindStringSubmatch(item.URL)
	if m == nil {
		return renderLink(item)
	}
	return Embed{
		Kind:     KindIframe,
		Provider: "spotify",
		Src:      "https://open.spotify.com/embed/" + m[1] + "/" + m[2],
		Href:     item.URL,
		Host:     Host(item.URL),
	}
}

func renderTweet(item Item) Embed {
	if item.URL == "" {
		return Embed{Kind: KindNone}
	}
	return Embed{Kind: KindBlockquote, Provider: "twitter", Href: item.URL, Host: Host(item.URL)}
}

func renderInstagram(item Item) Embed {
	if item.URL == "" {
		return Embed{Kind: KindNone}
	}
	return Embed{Kind: KindBlockquote, Provider: "instagram", Href: item.URL, Host: Host(item.URL)}
}

func renderImage(item Item) Embed {
	if item.URL == "" {
		return Embed{Kind: KindNone}
	}
	return Embed{
		Kind: KindImage,
		Src:  item.URL,
		Href: item.URL,
		Host: Host(item.URL),
		Text: fallback(item.Title, "image"),
	}
}

func renderNote(item Item) Embed {
	return Embed{Kind: KindText, Text: fallback(item.Description, "No description")}
}

func renderLink(item Item) Embed {
	if item.URL == "" {
		return Embed{Kind: KindNone}
	}
	return Embed{Kind: KindAnchor, Href: item.URL, Host: Host(item.URL), Text: item.URL}
}

// Host returns the lowercase ASCII (punycode) host of raw, or "" when raw
// has no parseable host.
func Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return strings.ToLower(u.Hostname())
	}
	return host
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
