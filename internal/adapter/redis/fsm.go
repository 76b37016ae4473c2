package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// Abandoned sessions expire on their own.
const sessionTTL = 24 * time.Hour

// FSM stores the per-learner conversation state and session data.
type FSM struct {
	client *redis.Client
}

func NewFSM(uri string) (*FSM, error) {
	client, err := newClient(uri)
	if err != nil {
		return nil, err
	}
	return &FSM{client: client}, nil
}

func (f *FSM) Close() error {
	return f.client.Close()
}

func stateKey(userID string) string {
	return "fsm:state:" + userID
}

func dataKey(userID, key string) string {
	return fmt.Sprintf("fsm:data:%s:%s", userID, key)
}

// SetState sets the current state for a user
func (f *FSM) SetState(ctx context.Context, userID string, state domain.State) error {
	return f.client.Set(ctx, stateKey(userID), string(state), sessionTTL).Err()
}

// GetState gets the current state for a user. Learners without a session
// start from the beginning.
func (f *FSM) GetState(ctx context.Context, userID string) (domain.State, error) {
	val, err := f.client.Get(ctx, stateKey(userID)).Result()
	if err == redis.Nil {
		return domain.StateStart, nil
	}
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}
	return domain.State(val), nil
}

// DeleteState deletes the state for a user
func (f *FSM) DeleteState(ctx context.Context, userID string) error {
	return f.client.Del(ctx, stateKey(userID)).Err()
}

// SetData sets temporary data for a user's current session
func (f *FSM) SetData(ctx context.Context, userID, key, value string) error {
	return f.client.Set(ctx, dataKey(userID, key), value, sessionTTL).Err()
}

// GetData gets temporary data for a user's current session
func (f *FSM) GetData(ctx context.Context, userID, key string) (string, error) {
	val, err := f.client.Get(ctx, dataKey(userID, key)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("session data %q not found", key)
	}
	if err != nil {
		return "", fmt.Errorf("get data: %w", err)
	}
	return val, nil
}

// DeleteData deletes temporary data for a user
func (f *FSM) DeleteData(ctx context.Context, userID, key string) error {
	return f.client.Del(ctx, dataKey(userID, key)).Err()
}
