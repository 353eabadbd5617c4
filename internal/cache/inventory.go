package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix  = "user:%s"
	StampKeyPrefix = "stamp:%s"
	StampListKey   = "stamps:all"
)

const (
	UserTTL      = 5 * time.Minute
	StampTTL     = 10 * time.Minute
	StampListTTL = 10 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func StampKey(stampID uuid.UUID) string {
	return fmt.Sprintf(StampKeyPrefix, stampID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateStamp(ctx context.Context, stampID uuid.UUID) {
	Invalidate(ctx, StampKey(stampID))
	Invalidate(ctx, StampListKey)
}
