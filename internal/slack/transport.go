package slack

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

const maxAttempts = 4

// initialBackoff is a var so tests can shrink the retry schedule.
var initialBackoff = 500 * time.Millisecond

// cookieTransport wraps an http.RoundTripper to add cookie headers
type cookieTransport struct {
	transport http.RoundTripper
	cookie    string
	logger    *zap.Logger
}

func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Cookie", "d="+t.cookie)
	return t.transport.RoundTrip(req)
}

// newCookieTransport creates a transport with cookie authentication
func newCookieTransport(cookie string, logger *zap.Logger) *cookieTransport {
	return &cookieTransport{
		transport: http.DefaultTransport,
		cookie:    cookie,
		logger:    logger,
	}
}

// withRetry runs fn until it succeeds or its retry budget is spent.
// Rate-limit responses wait the server-indicated Retry-After and do not
// count against the budget. Transient network and 5xx failures back off
// exponentially up to maxAttempts. Auth errors and other Slack API errors
// return immediately. All waits respect ctx.
func withRetry(ctx context.Context, logger *zap.Logger, fn func() error) error {
	backoff := initialBackoff
	attempt := 1
	for {
		err := fn()
		if err == nil {
			return nil
		}

		var rateLimitErr *slack.RateLimitedError
		if errors.As(err, &rateLimitErr) {
			logger.Info("Rate limited by Slack, waiting",
				zap.Duration("retry_after", rateLimitErr.RetryAfter))
			if err := sleep(ctx, rateLimitErr.RetryAfter); err != nil {
				return err
			}
			continue
		}

		if authErr := matchAuthError(err); authErr != nil {
			return authErr
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !isTransient(err) || attempt >= maxAttempts {
			return err
		}

		logger.Warn("Slack request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		if err := sleep(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
		attempt++
	}
}

// isTransient reports whether a failure is worth retrying: server-side 5xx
// responses and network-level errors. Slack API logical errors (for example
// channel_not_found) are not.
func isTransient(err error) bool {
	var scErr slack.StatusCodeError
	if errors.As(err, &scErr) {
		return scErr.Code >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
