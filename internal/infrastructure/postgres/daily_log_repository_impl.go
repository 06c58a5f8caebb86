package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/domain/repository"
)

type DailyLogRepository struct {
	pool *pgxpool.Pool
}

func NewDailyLogRepository(pool *pgxpool.Pool) *DailyLogRepository {
	return &DailyLogRepository{pool: pool}
}

// Create upserts by (user_id, log_date) so re-submitting a day replaces it.
func (r *DailyLogRepository) Create(ctx context.Context, l *entity.DailyLog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO daily_logs (id, user_id, log_date, steps, water_intake_ml, sleep_hours, mood, calories_burned, heart_rate_avg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, log_date) DO UPDATE SET
			steps = EXCLUDED.steps,
			water_intake_ml = EXCLUDED.water_intake_ml,
			sleep_hours = EXCLUDED.sleep_hours,
			mood = EXCLUDED.mood,
			calories_burned = EXCLUDED.calories_burned,
			heart_rate_avg = EXCLUDED.heart_rate_avg
		RETURNING id, created_at
	`, l.ID, l.UserID, l.Date, l.Steps, l.WaterIntakeML, l.SleepHours, string(l.Mood), l.CaloriesBurned, l.HeartRateAvg)
	return row.Scan(&l.ID, &l.CreatedAt)
}

func (r *DailyLogRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]*entity.DailyLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, log_date, steps, water_intake_ml, sleep_hours, mood, calories_burned, heart_rate_avg, created_at
		FROM daily_logs
		WHERE user_id = $1 AND log_date >= $2
		ORDER BY log_date ASC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.DailyLog
	for rows.Next() {
		l := &entity.DailyLog{}
		var mood string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.Steps, &l.WaterIntakeML, &l.SleepHours, &mood,
			&l.CaloriesBurned, &l.HeartRateAvg, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Mood = entity.Mood(mood)
		out = append(out, l)
	}
	return out, rows.Err()
}

var _ repository.DailyLogRepository = (*DailyLogRepository)(nil)
