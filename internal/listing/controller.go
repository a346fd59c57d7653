// Path: internal/listing/controller.go
package listing

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"article-browser/internal/domain"
	"article-browser/internal/events"
)

// ErrSuperseded is returned for a fetch whose result was discarded because a
// newer fetch was started after it.
var ErrSuperseded = errors.New("listing: response superseded by a newer request")

// Fetcher loads one page of articles. *client.Client implements it.
type Fetcher interface {
	FetchArticles(ctx context.Context, page, limit int64, search string) (*domain.ArticlePage, error)
}

// Options tunes a Controller.
type Options struct {
	PageSize     int64
	FetchTimeout time.Duration
}

// Controller drives an infinite-scroll article listing: the first page on
// mount, the next page each time the end of the list becomes visible, and a
// fresh first page on every search. Methods block until their fetch finishes
// and may be called from several goroutines.
type Controller struct {
	fetcher Fetcher
	opts    Options
	broker  *events.Broker
	logger  *zap.Logger

	mu        sync.Mutex
	mounted   bool
	loaded    bool // a fetch succeeded since the last reset
	page      int64
	loading   bool
	hasMore   bool
	search    string
	articles  []domain.Article
	selected  *domain.Article
	modalOpen bool

	token  uint64
	cancel context.CancelFunc
}

// NewController creates a controller in the Idle phase.
func NewController(fetcher Fetcher, opts Options, broker *events.Broker, logger *zap.Logger) *Controller {
	if opts.PageSize < 1 {
		opts.PageSize = domain.DefaultLimit
	}
	return &Controller{
		fetcher: fetcher,
		opts:    opts,
		broker:  broker,
		logger:  logger,
		page:    domain.DefaultPage,
		hasMore: true,
	}
}

// Mount loads the first unfiltered page. Later calls do nothing.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	req := c.beginLocked(ctx, domain.DefaultPage)
	c.mu.Unlock()

	return c.run(req)
}

// SentinelVisible loads the next page. It does nothing while a fetch is in
// flight, before Mount, and once the listing is exhausted. If nothing has
// loaded yet in this session the current page is retried instead.
func (c *Controller) SentinelVisible(ctx context.Context) error {
	c.mu.Lock()
	if !c.mounted || c.loading || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	next := c.page
	if c.loaded {
		next++
	}
	req := c.beginLocked(ctx, next)
	c.mu.Unlock()

	return c.run(req)
}

// Submit starts a new search session. The accumulated list is cleared at once
// and any fetch still in flight is cancelled and its result ignored.
func (c *Controller) Submit(ctx context.Context, search string) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mounted = true
	c.loaded = false
	c.articles = nil
	c.hasMore = true
	c.search = search
	c.page = domain.DefaultPage
	req := c.beginLocked(ctx, domain.DefaultPage)
	c.mu.Unlock()

	return c.run(req)
}

// Select opens the detail view for article.
func (c *Controller) Select(article domain.Article) {
	c.mu.Lock()
	c.selected = &article
	c.modalOpen = true
	state := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(events.TopicSelection, state)
}

// Dismiss closes the detail view. The selection itself is kept.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	c.modalOpen = false
	state := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(events.TopicSelection, state)
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Detail presents the current selection, if the detail view is open.
func (c *Controller) Detail() (DetailView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PresentDetail(c.selected, c.modalOpen)
}

type fetchRequest struct {
	ctx      context.Context
	cancel   context.CancelFunc
	token    uint64
	page     int64
	prevPage int64
	search   string
}

// beginLocked moves to Loading and tags the fetch with a new token.
func (c *Controller) beginLocked(parent context.Context, page int64) fetchRequest {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.opts.FetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(parent, c.opts.FetchTimeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	c.token++
	req := fetchRequest{
		ctx:      ctx,
		cancel:   cancel,
		token:    c.token,
		page:     page,
		prevPage: c.page,
		search:   c.search,
	}
	c.page = page
	c.loading = true
	c.cancel = cancel

	c.publish(events.TopicListingState, c.snapshotLocked())
	return req
}

func (c *Controller) run(req fetchRequest) error {
	defer req.cancel()

	result, err := c.fetcher.FetchArticles(req.ctx, req.page, c.opts.PageSize, req.search)

	c.mu.Lock()
	if req.token != c.token {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale listing response",
			zap.Int64("page", req.page), zap.String("search", req.search))
		return ErrSuperseded
	}
	c.loading = false
	c.cancel = nil

	if err != nil {
		c.page = req.prevPage
		state := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Error("Fetching articles failed",
			zap.Int64("page", req.page), zap.String("search", req.search), zap.Error(err))
		c.publish(events.TopicListingState, state)
		return err
	}

	c.loaded = true
	if len(result.Articles) == 0 {
		c.hasMore = false
	} else {
		for _, a := range result.Articles {
			if a.Title == "" {
				a.Title = a.DisplayTitle()
			}
			c.articles = append(c.articles, a)
		}
	}
	state := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(events.TopicListingState, state)
	return nil
}

func (c *Controller) snapshotLocked() State {
	state := State{
		Phase:      c.phaseLocked(),
		Page:       c.page,
		Loading:    c.loading,
		HasMore:    c.hasMore,
		SearchTerm: c.search,
		Articles:   append([]domain.Article(nil), c.articles...),
		ModalOpen:  c.modalOpen,
	}
	if c.selected != nil {
		selected := *c.selected
		state.Selected = &selected
	}
	return state
}

func (c *Controller) phaseLocked() Phase {
	switch {
	case c.loading:
		return PhaseLoading
	case !c.hasMore:
		return PhaseExhausted
	case c.loaded:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

func (c *Controller) publish(topic string, state State) {
	if c.broker != nil {
		c.broker.Publish(topic, state)
	}
}
