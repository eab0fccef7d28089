package slack

import (
	"context"

	"go.uber.org/zap"

	"github.com/matillion/slack-channel-export/internal/export"
)

// ResolveUsers looks up the profile for each user ID, one users.info call
// per distinct ID. A failed lookup (deleted or unknown user) degrades to a
// placeholder profile holding the ID itself; a single unresolvable user
// must not fail the export. Context cancellation still aborts.
func (c *Client) ResolveUsers(ctx context.Context, ids []string) (map[string]export.UserProfile, error) {
	profiles := make(map[string]export.UserProfile, len(ids))

	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := profiles[id]; ok {
			continue
		}

		profile, err := c.lookupUser(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("User lookup failed, using placeholder",
				zap.String("user_id", id),
				zap.Error(err))
			profile = export.UserProfile{Name: id, DisplayName: id}
		}
		profiles[id] = profile
	}

	c.logger.Info("Resolved users", zap.Int("count", len(profiles)))
	return profiles, nil
}

func (c *Client) lookupUser(ctx context.Context, id string) (export.UserProfile, error) {
	var profile export.UserProfile
	err := withRetry(ctx, c.logger, func() error {
		user, e := c.api.GetUserInfoContext(ctx, id)
		if e != nil {
			return e
		}
		displayName := user.RealName
		if displayName == "" {
			displayName = user.Profile.DisplayName
		}
		profile = export.UserProfile{
			Name:        user.Name,
			DisplayName: displayName,
		}
		return nil
	})
	return profile, err
}
