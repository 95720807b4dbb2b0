package s247

import (
	"context"
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// TopAll requests every item up to the first empty page
const TopAll = -1

// PageStyle selects how the page number parameter is appended to a listing
// URL. It is a fixed property of the listing type, never inferred.
type PageStyle int

const (
	// PageAmp appends "&Page=k"; rankings listings already carry a query
	PageAmp PageStyle = iota
	// PageQuery appends "?Page=k"; prediction listings carry none
	PageQuery
)

func (s PageStyle) pageURL(baseURL string, page int) string {
	if s == PageQuery {
		return fmt.Sprintf("%s?Page=%d", baseURL, page)
	}
	return fmt.Sprintf("%s&Page=%d", baseURL, page)
}

// FragmentFunc extracts the item fragments of one listing page
type FragmentFunc func(doc *goquery.Document) []*goquery.Selection

// RegularPlayerFragments selects the recruit rows of a rankings page. The
// listing carries a trailing non-item element that is dropped.
func RegularPlayerFragments(doc *goquery.Document) []*goquery.Selection {
	items := doc.Find("li.rankings-page__list-item")
	n := items.Length()
	var fragments []*goquery.Selection
	items.Each(func(i int, item *goquery.Selection) {
		if i == n-1 {
			return
		}
		if w, ok := find(item, "div.wrapper"); ok {
			fragments = append(fragments, w)
		}
	})
	return fragments
}

// CrystalBallFragments selects the prediction rows of a crystal-ball page
func CrystalBallFragments(doc *goquery.Document) []*goquery.Selection {
	var fragments []*goquery.Selection
	doc.Find("li.target").Each(func(_ int, item *goquery.Selection) {
		if ul, ok := find(item, "ul"); ok {
			fragments = append(fragments, ul)
		}
	})
	return fragments
}

// TeamFragments selects the team rows of a team rankings page
func TeamFragments(doc *goquery.Document) []*goquery.Selection {
	var fragments []*goquery.Selection
	doc.Find("li.rankings-page__list-item").Each(func(_ int, item *goquery.Selection) {
		if w, ok := find(item, "div.wrapper"); ok {
			fragments = append(fragments, w)
		}
	})
	return fragments
}

// Cache stores collected fragment batches keyed by listing URL and target
// count. Collectors receive it explicitly; a nil Cache disables caching.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]*goquery.Selection
}

// NewCache creates an empty Cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]*goquery.Selection)}
}

func cacheKey(baseURL string, top int) string {
	return fmt.Sprintf("%s|top=%d", baseURL, top)
}

// Get returns the cached batch for the query parameters, if any
func (c *Cache) Get(baseURL string, top int) ([]*goquery.Selection, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fragments, ok := c.entries[cacheKey(baseURL, top)]
	return fragments, ok
}

// Put stores a collected batch under the query parameters
func (c *Cache) Put(baseURL string, top int, fragments []*goquery.Selection) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(baseURL, top)] = fragments
}

// Invalidate removes the cached batch for the query parameters
func (c *Cache) Invalidate(baseURL string, top int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(baseURL, top))
}

// Collect walks the numbered pages of a listing until top items are
// gathered or, for TopAll, until a page yields no fragments. The result
// never exceeds top. It is not deduplicated: if the site repeats an item
// across pages the duplicate is kept.
func Collect(ctx context.Context, fetcher Fetcher, log *zap.SugaredLogger, baseURL string, top int, style PageStyle, fragments FragmentFunc) ([]*goquery.Selection, error) {
	if top != TopAll && top <= 0 {
		return nil, nil
	}
	var collected []*goquery.Selection
	for page := 1; ; page++ {
		url := style.pageURL(baseURL, page)
		log.Debugf("collecting page %d: %s", page, url)
		doc, err := fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		items := fragments(doc)
		if len(items) == 0 {
			break
		}
		collected = append(collected, items...)
		if top != TopAll && len(collected) >= top {
			collected = collected[:top]
			break
		}
	}
	return collected, nil
}
