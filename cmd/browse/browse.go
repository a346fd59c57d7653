// Path: cmd/browse/browse.go
package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"article-browser/internal/client"
	"article-browser/internal/events"
	"article-browser/internal/listing"
)

type browseOptions struct {
	APIURL  string
	APIPath string
	Search  string
	Limit   int64
	Pages   int
	Show    int
	Timeout time.Duration
}

func runBrowse(ctx context.Context, out io.Writer, opts browseOptions, logger *zap.Logger) error {
	broker := events.NewBroker()
	states := broker.Subscribe(events.TopicListingState)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range states {
			st := ev.Data.(listing.State)
			logger.Debug("Listing state",
				zap.Stringer("phase", st.Phase),
				zap.Int64("page", st.Page),
				zap.Int("articles", len(st.Articles)))
		}
	}()
	defer func() {
		broker.Unsubscribe(events.TopicListingState, states)
		<-done
	}()

	fetcher := client.New(opts.APIURL, opts.APIPath, opts.Timeout)
	ctrl := listing.NewController(fetcher, listing.Options{
		PageSize:     opts.Limit,
		FetchTimeout: opts.Timeout,
	}, broker, logger)

	var err error
	if opts.Search != "" {
		err = ctrl.Submit(ctx, opts.Search)
	} else {
		err = ctrl.Mount(ctx)
	}
	if err != nil {
		return fmt.Errorf("loading first page: %w", err)
	}

	for i := 1; i < opts.Pages && ctrl.State().HasMore; i++ {
		if err := ctrl.SentinelVisible(ctx); err != nil {
			return fmt.Errorf("loading page %d: %w", i+1, err)
		}
	}

	state := ctrl.State()
	for i, a := range state.Articles {
		fmt.Fprintf(out, "%3d. %s  (%s, %s likes, %s comments)\n",
			i+1, a.DisplayTitle(), a.DisplayAuthor(), countText(a.Likes.String()), countText(a.Comments.String()))
	}
	if !state.HasMore {
		fmt.Fprintln(out, "-- no more articles --")
	}

	if opts.Show > 0 {
		if opts.Show > len(state.Articles) {
			return fmt.Errorf("--show %d: only %d articles loaded", opts.Show, len(state.Articles))
		}
		ctrl.Select(state.Articles[opts.Show-1])
		view, ok := ctrl.Detail()
		if ok {
			fmt.Fprintln(out)
			if err := listing.RenderDetail(out, view); err != nil {
				return err
			}
		}
		ctrl.Dismiss()
	}
	return nil
}

func countText(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
