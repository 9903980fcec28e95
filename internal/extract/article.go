package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	mdtable "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/briefly-ai/briefly/internal/model"
	appErr "github.com/briefly-ai/briefly/internal/pkg/errors"
)

// Some sites block default Go user agents outright, so requests carry a
// browser identity.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type FetcherConfig struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
}

func (c FetcherConfig) withDefaults() FetcherConfig {
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 8 << 20
	}
	if c.UserAgent == "" {
		c.UserAgent = browserUserAgent
	}
	return c
}

// Fetcher downloads a web page and extracts its readable article text.
type Fetcher struct {
	cfg       FetcherConfig
	client    *http.Client
	sanitizer *bluemonday.Policy
	converter *converter.Converter
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	cfg = cfg.withDefaults()
	return &Fetcher{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		sanitizer: bluemonday.UGCPolicy(),
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				mdtable.NewTablePlugin(),
			),
		),
	}
}

// FetchArticle downloads the page at rawURL and returns the readable
// article content. Access failures map onto user-facing errors instead
// of raw HTTP statuses.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*model.Article, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: not an http(s) url", appErr.ErrInvalid)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: authentication required, this website requires login or has restricted access", appErr.ErrFetchFailed)
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: access denied, this website might be blocking automated access", appErr.ErrFetchFailed)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: article not found, the url might be incorrect or the article removed", appErr.ErrNotFound)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("%w: unexpected status %d", appErr.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrFetchFailed, err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", appErr.ErrFetchFailed, err)
	}

	article := f.extract(doc, parsed)
	if strings.TrimSpace(article.Text) == "" {
		return nil, fmt.Errorf("%w: no text content could be extracted from the article", appErr.ErrFetchFailed)
	}
	logutil.GetLogger(ctx).Info("article extracted",
		zap.String("host", parsed.Host),
		zap.String("title", article.Title),
		zap.Int("chars", len(article.Text)),
	)
	return article, nil
}

func (f *Fetcher) extract(doc *html.Node, pageURL *url.URL) *model.Article {
	meta := collectMeta(doc)
	article := &model.Article{
		Title:       firstNonEmpty(meta["og:title"], findTitle(doc)),
		Byline:      firstNonEmpty(meta["author"], meta["article:author"], siteName(pageURL)),
		SiteName:    firstNonEmpty(meta["og:site_name"], siteName(pageURL)),
		PublishDate: firstNonEmpty(meta["article:published_time"], meta["date"], "N/A"),
		TopImage:    meta["og:image"],
	}

	content := findContentNode(doc)
	safe := f.sanitizer.Sanitize(renderNode(content))
	markdown, err := f.converter.ConvertString(safe, converter.WithDomain(pageURL.String()))
	if err != nil || strings.TrimSpace(markdown) == "" {
		article.Text = collectText(content)
		return article
	}
	article.Text = MarkdownToText(markdown)
	return article
}

// findContentNode prefers semantic landmarks over the whole body.
func findContentNode(doc *html.Node) *html.Node {
	for _, tag := range []atom.Atom{atom.Article, atom.Main} {
		if n := findFirstByTag(doc, tag); n != nil {
			return n
		}
	}
	if body := findFirstByTag(doc, atom.Body); body != nil {
		return body
	}
	return doc
}

func findFirstByTag(root *html.Node, tag atom.Atom) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == tag {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

func findTitle(doc *html.Node) string {
	if n := findFirstByTag(doc, atom.Title); n != nil && n.FirstChild != nil {
		return strings.TrimSpace(n.FirstChild.Data)
	}
	return ""
}

func collectMeta(doc *html.Node) map[string]string {
	meta := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
			var key, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property", "name":
					key = strings.ToLower(attr.Val)
				case "content":
					content = attr.Val
				}
			}
			if key != "" && content != "" {
				if _, ok := meta[key]; !ok {
					meta[key] = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return meta
}

func collectText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Nav, atom.Footer, atom.Aside:
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func renderNode(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

func siteName(u *url.URL) string {
	host := u.Hostname()
	return strings.TrimPrefix(host, "www.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
