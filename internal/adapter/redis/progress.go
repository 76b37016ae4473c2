package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/escalopa/quran-recite-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	hasanatKeyPrefix = "progress:hasanat:"
	countKeyPrefix   = "progress:count:"
	streakKeyPrefix  = "progress:streak:"
	lastKeyPrefix    = "progress:last:"

	dateLayout = "2006-01-02"
)

// ProgressStore keeps per-learner hasanat totals and daily recitation streaks.
type ProgressStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewProgressStore(uri string) (*ProgressStore, error) {
	client, err := newClient(uri)
	if err != nil {
		return nil, err
	}
	return &ProgressStore{client: client, now: time.Now}, nil
}

func (p *ProgressStore) Close() error {
	return p.client.Close()
}

// RecordRecitation adds the earned hasanat and advances the daily streak:
// a recitation on the day after the last one extends the streak, a second
// recitation on the same day keeps it, anything else restarts it at 1.
func (p *ProgressStore) RecordRecitation(ctx context.Context, learnerID string, hasanat int) (*domain.Progress, error) {
	total, err := p.client.IncrBy(ctx, hasanatKeyPrefix+learnerID, int64(hasanat)).Result()
	if err != nil {
		return nil, fmt.Errorf("add hasanat: %w", err)
	}

	count, err := p.client.Incr(ctx, countKeyPrefix+learnerID).Result()
	if err != nil {
		return nil, fmt.Errorf("count recitation: %w", err)
	}

	streak, err := p.advanceStreak(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	return &domain.Progress{
		LearnerID:   learnerID,
		Hasanat:     total,
		Streak:      streak,
		Recitations: count,
		LastRecited: p.now(),
	}, nil
}

func (p *ProgressStore) advanceStreak(ctx context.Context, learnerID string) (int, error) {
	today := p.now().Format(dateLayout)
	yesterday := p.now().AddDate(0, 0, -1).Format(dateLayout)

	last, err := p.client.Get(ctx, lastKeyPrefix+learnerID).Result()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("get last recited: %w", err)
	}

	var streak int64
	switch last {
	case today:
		streak, err = p.client.Get(ctx, streakKeyPrefix+learnerID).Int64()
		if err != nil && err != redis.Nil {
			return 0, fmt.Errorf("get streak: %w", err)
		}
		if streak == 0 {
			streak = 1
		}
	case yesterday:
		streak, err = p.client.Incr(ctx, streakKeyPrefix+learnerID).Result()
		if err != nil {
			return 0, fmt.Errorf("extend streak: %w", err)
		}
	default:
		streak = 1
	}

	if err := p.client.Set(ctx, streakKeyPrefix+learnerID, streak, 0).Err(); err != nil {
		return 0, fmt.Errorf("set streak: %w", err)
	}
	if err := p.client.Set(ctx, lastKeyPrefix+learnerID, today, 0).Err(); err != nil {
		return 0, fmt.Errorf("set last recited: %w", err)
	}

	return int(streak), nil
}

// GetProgress returns the learner's accumulated totals; a learner with no
// recitations gets a zero-valued progress, not an error.
func (p *ProgressStore) GetProgress(ctx context.Context, learnerID string) (*domain.Progress, error) {
	progress := &domain.Progress{LearnerID: learnerID}

	var err error
	progress.Hasanat, err = p.getInt(ctx, hasanatKeyPrefix+learnerID)
	if err != nil {
		return nil, fmt.Errorf("get hasanat: %w", err)
	}

	progress.Recitations, err = p.getInt(ctx, countKeyPrefix+learnerID)
	if err != nil {
		return nil, fmt.Errorf("get recitation count: %w", err)
	}

	streak, err := p.getInt(ctx, streakKeyPrefix+learnerID)
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}
	progress.Streak = int(streak)

	last, err := p.client.Get(ctx, lastKeyPrefix+learnerID).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("get last recited: %w", err)
	}
	if last != "" {
		progress.LastRecited, _ = time.Parse(dateLayout, last)
	}

	return progress, nil
}

func (p *ProgressStore) getInt(ctx context.Context, key string) (int64, error) {
	val, err := p.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}
