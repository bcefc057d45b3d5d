package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateOptionCache drops the catalog entry and availability stats for
// a topic after an instructor edit or a successful join.
func InvalidateOptionCache(ctx context.Context, cm *CacheManager, optionID int) {
	SafeDelete(ctx, cm.Option, fmt.Sprintf("id:%d", optionID), "list")
	SafeDelete(ctx, cm.Stats, fmt.Sprintf("option:%d", optionID))
}
