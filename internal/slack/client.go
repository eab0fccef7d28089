package slack

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// SlackAPI defines the Slack API methods used by the client
type SlackAPI interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

// Config holds configuration for the Slack client
type Config struct {
	Token  string // Slack API token (required)
	Cookie string // Slack cookie for xoxc token auth (optional)
}

type Client struct {
	api    SlackAPI
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, &AuthError{Code: "not_authed", Message: authErrorCodes["not_authed"]}
	}

	opts := []slack.Option{}

	if cfg.Cookie != "" {
		logger.Info("Using cookie authentication for Slack client")
		httpClient := &http.Client{
			Transport: newCookieTransport(cfg.Cookie, logger),
		}
		opts = append(opts, slack.OptionHTTPClient(httpClient))
	}

	api := slack.New(cfg.Token, opts...)

	return &Client{
		api:    api,
		logger: logger,
	}, nil
}

// newClientWithAPI creates a client with a given SlackAPI (for testing)
func newClientWithAPI(api SlackAPI, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:    api,
		logger: logger,
	}
}

// CheckAuth verifies the credential with auth.test before any history is
// fetched, so a bad token fails the run up front.
func (c *Client) CheckAuth(ctx context.Context) error {
	err := withRetry(ctx, c.logger, func() error {
		_, e := c.api.AuthTestContext(ctx)
		return e
	})
	if err != nil {
		if authErr := matchAuthError(err); authErr != nil {
			return authErr
		}
		return fmt.Errorf("auth.test: %w", err)
	}
	return nil
}

// archiveURLPattern matches Slack channel permalinks such as
// https://example.slack.com/archives/C0123456789
var archiveURLPattern = regexp.MustCompile(`^https://[^/]+/archives/([A-Z0-9]+)`)

// ExtractChannelID accepts a channel ID or a Slack channel URL and returns
// the bare channel ID.
func ExtractChannelID(channelOrURL string) (string, error) {
	if m := archiveURLPattern.FindStringSubmatch(channelOrURL); m != nil {
		return m[1], nil
	}
	if isChannelID(channelOrURL) {
		return channelOrURL, nil
	}
	return "", fmt.Errorf("%q is not a channel ID or channel URL", channelOrURL)
}

// isChannelID checks if a string looks like a Slack channel ID
// Channel IDs are uppercase alphanumeric strings starting with C, D, or G
// and are typically 9-11 characters long
func isChannelID(s string) bool {
	if len(s) < 9 {
		return false
	}

	// Must start with C, D, or G
	if s[0] != 'C' && s[0] != 'D' && s[0] != 'G' {
		return false
	}

	// Must be all uppercase alphanumeric
	for _, ch := range s {
		if !((ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')) {
			return false
		}
	}

	return true
}
