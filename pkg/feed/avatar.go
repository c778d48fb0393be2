package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// iconRelPriority lists link rel values accepted as an avatar, best first
var iconRelPriority = []string{
	"apple-touch-icon",
	"apple-touch-icon-precomposed",
	"mask-icon",
	"shortcut icon",
	"icon",
}

// AvatarResolver discovers a display image for a source from its homepage
type AvatarResolver struct {
	client    *http.Client
	userAgent string
}

// NewAvatarResolver creates a resolver with a bounded per-request timeout
func NewAvatarResolver(timeout time.Duration, userAgent string) *AvatarResolver {
	return &AvatarResolver{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Resolve fetches the page and returns the first icon or preview image it
// finds as an absolute URL. Favicon link elements win over og:image /
// twitter:image meta tags. Returns empty string without error when the
// page carries no usable marker.
func (r *AvatarResolver) Resolve(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", r.userAgent)
	addPageHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: pageURL, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page %s: %w", pageURL, err)
	}

	// relative candidates resolve against the final URL after redirects
	base := resp.Request.URL

	icons, ogImage := collectCandidates(doc)
	for _, rel := range iconRelPriority {
		if href, ok := icons[rel]; ok {
			if abs := absoluteURL(base, href); abs != "" {
				return abs, nil
			}
		}
	}
	if abs := absoluteURL(base, ogImage); abs != "" {
		return abs, nil
	}

	return "", nil
}

// collectCandidates walks the document once, gathering icon hrefs keyed by
// matched rel keyword and the first og:image / twitter:image content
func collectCandidates(doc *html.Node) (icons map[string]string, ogImage string) {
	icons = make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "link":
				rel, href := attr(n, "rel"), attr(n, "href")
				if href != "" {
					relLower := strings.ToLower(rel)
					for _, keyword := range iconRelPriority {
						if _, taken := icons[keyword]; !taken && strings.Contains(relLower, keyword) {
							icons[keyword] = href
							break
						}
					}
				}
			case "meta":
				key := attr(n, "property")
				if key == "" {
					key = attr(n, "name")
				}
				if ogImage == "" && (key == "og:image" || key == "twitter:image") {
					ogImage = attr(n, "content")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return icons, ogImage
}

// attr returns the value of the named attribute, empty when absent
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// absoluteURL resolves candidate against base, empty on failure
func absoluteURL(base *url.URL, candidate string) string {
	if candidate == "" {
		return ""
	}
	ref, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
