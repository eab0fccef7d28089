package slack

import (
	"context"
	"fmt"
	"slices"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/matillion/slack-channel-export/internal/export"
	"github.com/matillion/slack-channel-export/internal/jst"
)

const historyPageSize = 200

// FetchHistory retrieves every message posted to channelID within r,
// oldest first, with each message's thread replies attached. Thread
// resolution for one message completes before the next message is built,
// so output order is deterministic and at most one request is in flight.
func (c *Client) FetchHistory(ctx context.Context, channelID string, r jst.Range) ([]export.Message, error) {
	c.logger.Info("Fetching channel history",
		zap.String("channel_id", channelID),
		zap.String("oldest", r.StartReadable()),
		zap.String("latest", r.EndReadable()))

	p := c.historyPager(channelID, r)

	var raw []slack.Message
	for {
		msg, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		raw = append(raw, msg)
	}

	// conversations.history pages newest-first; the archive is oldest-first.
	slices.Reverse(raw)

	msgs := make([]export.Message, 0, len(raw))
	threads := 0
	for _, m := range raw {
		readable, err := jst.ToReadable(m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("message in channel %s: %w", channelID, err)
		}

		out := export.Message{
			Timestamp:     m.Timestamp,
			ReadableTime:  readable,
			User:          m.User,
			Text:          m.Text,
			ThreadReplies: []export.ThreadReply{},
		}

		if m.ReplyCount > 0 {
			replies, err := c.fetchThread(ctx, channelID, m.Timestamp)
			if err != nil {
				return nil, err
			}
			out.ThreadReplies = replies
			threads++
		}

		msgs = append(msgs, out)
	}

	c.logger.Info("Channel history fetched",
		zap.String("channel_id", channelID),
		zap.Int("messages", len(msgs)),
		zap.Int("threads", threads))

	return msgs, nil
}

func (c *Client) historyPager(channelID string, r jst.Range) *pager {
	return newPager("conversations.history", channelID, c.logger, func(ctx context.Context, cursor string) ([]slack.Message, string, error) {
		resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Cursor:    cursor,
			Oldest:    r.Oldest(),
			Latest:    r.Latest(),
			Inclusive: true,
			Limit:     historyPageSize,
		})
		if err != nil {
			return nil, "", err
		}
		next := ""
		if resp.HasMore {
			next = resp.ResponseMetaData.NextCursor
		}
		return resp.Messages, next, nil
	})
}

// fetchThread resolves a thread's replies in the order Slack returns them.
// The first item on the replies endpoint is the thread root, identified by
// its timestamp matching parentTS, and is excluded. A thread that resolves
// to zero non-root replies yields an empty slice, not an error.
func (c *Client) fetchThread(ctx context.Context, channelID, parentTS string) ([]export.ThreadReply, error) {
	p := newPager("conversations.replies", channelID, c.logger, func(ctx context.Context, cursor string) ([]slack.Message, string, error) {
		msgs, hasMore, next, err := c.api.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
			ChannelID: channelID,
			Timestamp: parentTS,
			Cursor:    cursor,
			Limit:     historyPageSize,
		})
		if err != nil {
			return nil, "", err
		}
		if !hasMore {
			next = ""
		}
		return msgs, next, nil
	})

	replies := []export.ThreadReply{}
	for {
		msg, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if msg.Timestamp == parentTS {
			continue
		}

		readable, err := jst.ToReadable(msg.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("thread %s in channel %s: %w", parentTS, channelID, err)
		}
		replies = append(replies, export.ThreadReply{
			Timestamp:    msg.Timestamp,
			ReadableTime: readable,
			User:         msg.User,
			Text:         msg.Text,
		})
	}

	return replies, nil
}
