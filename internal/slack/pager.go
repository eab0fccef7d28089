package slack

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// pageFunc issues one request against a cursor-paginated endpoint and
// returns the page's items plus the cursor for the next page. An empty
// cursor means the sequence is complete.
type pageFunc func(ctx context.Context, cursor string) (items []slack.Message, next string, err error)

// pager walks a cursor-paginated Slack endpoint as a pull-based sequence of
// messages, preserving the order the API returns them. Each page request
// runs under withRetry, so retry and backoff state stays local to one
// logical fetch. The sequence is finite and read exactly once; a fresh
// pager re-fetches from page one.
type pager struct {
	endpoint string
	channel  string
	logger   *zap.Logger
	fetch    pageFunc

	buf    []slack.Message
	cursor string
	done   bool
	pages  int
}

func newPager(endpoint, channel string, logger *zap.Logger, fetch pageFunc) *pager {
	return &pager{
		endpoint: endpoint,
		channel:  channel,
		logger:   logger,
		fetch:    fetch,
	}
}

// Next returns the next item in the sequence. The second result is false
// once the API reports no further cursor and all buffered items are
// consumed. Failures surface as *FetchError, or *AuthError for credential
// problems.
func (p *pager) Next(ctx context.Context) (slack.Message, bool, error) {
	for len(p.buf) == 0 {
		if p.done {
			return slack.Message{}, false, nil
		}

		var items []slack.Message
		var next string
		err := withRetry(ctx, p.logger, func() error {
			var e error
			items, next, e = p.fetch(ctx, p.cursor)
			return e
		})
		if err != nil {
			p.done = true
			if authErr := matchAuthError(err); authErr != nil {
				return slack.Message{}, false, authErr
			}
			return slack.Message{}, false, &FetchError{Endpoint: p.endpoint, Channel: p.channel, Err: err}
		}

		p.pages++
		p.logger.Debug("Fetched page",
			zap.String("endpoint", p.endpoint),
			zap.String("channel", p.channel),
			zap.Int("page", p.pages),
			zap.Int("items", len(items)))

		p.buf = items
		p.cursor = next
		if next == "" {
			p.done = true
		}
	}

	item := p.buf[0]
	p.buf = p.buf[1:]
	return item, true, nil
}
