package infra_session_cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis"
	"github.com/squabble-app/squabble/server/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Set(token string, session model.Session, ttl time.Duration) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}

	fullKey := d.getFullKey(token)
	if err := d.client.Set(fullKey, string(b), ttl).Err(); err != nil {
		return err
	}

	return nil
}

func (d *Driver) Get(token string) (model.Session, error) {
	fullKey := d.getFullKey(token)

	val, err := d.client.Get(fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return model.Session{}, ErrSessionNotFound
		}
		return model.Session{}, err
	}

	var session model.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return model.Session{}, err
	}

	return session, nil
}

func (d *Driver) Delete(token string) error {
	return d.client.Del(d.getFullKey(token)).Err()
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
