package repository

import (
	"context"
	"time"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

// DailyLogRepository stores tracker entries.
type DailyLogRepository interface {
	Create(ctx context.Context, l *entity.DailyLog) error
	// ListSince returns the user's logs dated on or after since, oldest first.
	ListSince(ctx context.Context, userID string, since time.Time) ([]*entity.DailyLog, error)
}
