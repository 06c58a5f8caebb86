package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/domain/repository"
)

type DailyLogRepository struct {
	mu     sync.RWMutex
	byUser map[string][]*entity.DailyLog
}

func NewDailyLogRepository() *DailyLogRepository {
	return &DailyLogRepository{byUser: make(map[string][]*entity.DailyLog)}
}

func (r *DailyLogRepository) Create(_ context.Context, l *entity.DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	logs := r.byUser[l.UserID]
	for i, existing := range logs {
		if sameDay(existing.Date, l.Date) {
			cp.ID = existing.ID
			logs[i] = &cp
			l.ID = existing.ID
			return nil
		}
	}
	r.byUser[l.UserID] = append(logs, &cp)
	return nil
}

func (r *DailyLogRepository) ListSince(_ context.Context, userID string, since time.Time) ([]*entity.DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.DailyLog
	for _, l := range r.byUser[userID] {
		if l.Date.Before(since) {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

var _ repository.DailyLogRepository = (*DailyLogRepository)(nil)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
