// Package feed implements offset-based feed pagination with the state needed
// to keep an infinite-scroll view consistent under concurrent mutations.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"glimpse/internal/middleware"
	"glimpse/internal/models"

	"github.com/google/uuid"
)

// DefaultPageSize is the number of posts fetched per page.
const DefaultPageSize = 10

// FetchFunc loads one page of posts, newest first.
type FetchFunc func(ctx context.Context, limit, offset int) ([]*models.Post, error)

// Pager drives an infinite-scroll feed. All methods are safe for concurrent
// use; loads are serialized by a single in-flight guard so a visibility
// trigger that races an ongoing load is dropped, not queued.
type Pager struct {
	mu       sync.Mutex
	fetch    FetchFunc
	pageSize int

	posts   []*models.Post
	offset  int
	hasMore bool
	loading bool
	loadErr error
}

// NewPager creates a pager with the default page size.
func NewPager(fetch FetchFunc) *Pager {
	return NewPagerWithSize(fetch, DefaultPageSize)
}

// NewPagerWithSize creates a pager with a custom page size.
func NewPagerWithSize(fetch FetchFunc, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{
		fetch:    fetch,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// Refresh clears the feed and loads the first page.
func (p *Pager) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.mu.Unlock()

	rows, err := p.fetch(ctx, p.pageSize, 0)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		p.loadErr = err
		return err
	}

	p.posts = rows
	p.offset = len(rows)
	p.hasMore = len(rows) == p.pageSize
	p.loadErr = nil
	return nil
}

// SentinelVisible is the load trigger: called when the end-of-list sentinel
// scrolls into view. It is a no-op while a load is in flight or after the
// feed is exhausted. Returns true if a load was performed.
func (p *Pager) SentinelVisible(ctx context.Context) bool {
	p.mu.Lock()
	if p.loading || !p.hasMore {
		p.mu.Unlock()
		return false
	}
	p.loading = true
	offset := p.offset
	p.mu.Unlock()

	rows, err := p.fetch(ctx, p.pageSize, offset)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		if len(p.posts) == 0 {
			// Nothing on screen: surface the failure as a retryable state.
			p.loadErr = err
		} else {
			// Content is already visible; the next sentinel hit retries
			// with the same offset.
			middleware.Logger.WarnContext(ctx, "feed page load failed",
				slog.Int("offset", offset),
				slog.String("error", err.Error()),
			)
		}
		return true
	}

	p.loadErr = nil
	p.posts = append(p.posts, rows...)
	// Offset advances by rows actually returned, so a short page both ends
	// the feed and keeps the offset aligned with the store.
	p.offset += len(rows)
	if len(rows) < p.pageSize {
		p.hasMore = false
	}
	return true
}

// Posts returns a snapshot of the loaded feed.
func (p *Pager) Posts() []*models.Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*models.Post, len(p.posts))
	copy(out, p.posts)
	return out
}

// HasMore reports whether another page may exist.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Err returns the retryable load failure, set only when the feed is empty.
func (p *Pager) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// Prepend inserts a newly created post at the top and advances the offset,
// keeping later pages aligned with the store after the insert shifted them.
func (p *Pager) Prepend(post *models.Post) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = append([]*models.Post{post}, p.posts...)
	p.offset++
}

// Remove drops a post after its delete settled and decrements the offset so
// the next page does not skip the row that slid into the deleted one's place.
func (p *Pager) Remove(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, post := range p.posts {
		if post.ID == id {
			p.posts = append(p.posts[:i], p.posts[i+1:]...)
			if p.offset > 0 {
				p.offset--
			}
			return true
		}
	}
	return false
}

// Update replaces a post in place, used when a settled response carries
// fresher counts than the loaded row.
func (p *Pager) Update(post *models.Post) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, existing := range p.posts {
		if existing.ID == post.ID {
			p.posts[i] = post
			return true
		}
	}
	return false
}
