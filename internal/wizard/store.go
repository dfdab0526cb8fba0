package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("wizard session not found")

const keyPrefix = "wizard:session:"

// Store keeps sessions in Redis. Expiry of the key is the abandonment
// path: an expired session is simply gone.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (st *Store) Create(ctx context.Context, userID int64) (*Session, error) {
	session := NewSession(uuid.NewString(), userID)
	if err := st.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (st *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := st.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (st *Store) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return st.rdb.Set(ctx, keyPrefix+session.ID, data, st.ttl).Err()
}

func (st *Store) Delete(ctx context.Context, id string) error {
	return st.rdb.Del(ctx, keyPrefix+id).Err()
}
