package cache

import (
	"context"
	"fmt"

	"time"

	"github.com/google/uuid"
)

// Key formats. Post and stats entries are keyed by internal UUID; profile
// entries are keyed by external identity so the auth edge can use them
// before resolution.
const (
	PostKeyPrefix      = "post:%s"
	UserStatsKeyPrefix = "user:%s:stats"
	ProfileKeyPrefix   = "profile:%s"
)

const (
	PostTTL      = 30 * time.Minute
	UserStatsTTL = 5 * time.Minute
	ProfileTTL   = 5 * time.Minute
)

func PostKey(postID uuid.UUID) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func UserStatsKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserStatsKeyPrefix, userID)
}

func ProfileKey(externalID string) string {
	return fmt.Sprintf(ProfileKeyPrefix, externalID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidatePost(ctx context.Context, postID uuid.UUID) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateUserStats drops the denormalized counter snapshot for a user so
// the next read reflects the settled database truth.
func InvalidateUserStats(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserStatsKey(userID))
}
