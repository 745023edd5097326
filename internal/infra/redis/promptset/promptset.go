package infra_redis_promptset

import (
	"context"
	"time"

	"github.com/go-redis/redis"
)

const keyTTL = 24 * time.Hour

// Driver keeps a per-room set of prompts already played, so consecutive
// rounds in the same room do not repeat a prompt until all were seen.
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

func (d *Driver) Used(ctx context.Context, roomCode string) ([]string, error) {
	used, err := d.client.SMembers(d.getFullKey(roomCode)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return used, nil
}

func (d *Driver) MarkUsed(ctx context.Context, roomCode string, prompt string) error {
	fullKey := d.getFullKey(roomCode)
	if err := d.client.SAdd(fullKey, prompt).Err(); err != nil {
		return err
	}
	return d.client.Expire(fullKey, keyTTL).Err()
}

func (d *Driver) Clear(ctx context.Context, roomCode string) error {
	return d.client.Del(d.getFullKey(roomCode)).Err()
}

func (d *Driver) getFullKey(roomCode string) string {
	return d.key + ":" + roomCode
}
