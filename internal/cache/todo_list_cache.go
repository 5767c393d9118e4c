package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gotodo/internal/model"
)

// TodoListCache caches list pages under a per-user generation counter.
// Writes bump the generation, so keys for stale pages simply stop being
// addressed and age out via TTL.
type TodoListCache struct {
	client  *redisv9.Client
	listTTL time.Duration
}

func NewTodoListCache(client *redisv9.Client, listTTL time.Duration) *TodoListCache {
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}
	return &TodoListCache{
		client:  client,
		listTTL: listTTL,
	}
}

// GetList also returns the generation it observed, so the caller can store a
// freshly loaded page under that same generation with SetList. Storing under
// a re-read generation would let a write that lands between the caller's DB
// read and SetList file the stale page under the new, live generation.
func (c *TodoListCache) GetList(ctx context.Context, userID uint, page, limit int) ([]model.Todo, int64, bool, error) {
	gen, err := c.generation(ctx, userID)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, c.listKey(userID, gen, page, limit)).Result()
	if err == redisv9.Nil {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("redis get todo list failed: %w", err)
	}

	var todos []model.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return nil, gen, false, fmt.Errorf("unmarshal cached todo list failed: %w", err)
	}
	return todos, gen, true, nil
}

// SetList stores a page under the generation the caller observed before
// loading it. If a write bumped the generation in the meantime the page lands
// under the dead generation and is never served.
func (c *TodoListCache) SetList(ctx context.Context, userID uint, gen int64, page, limit int, todos []model.Todo) error {
	payload, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("marshal todo list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(userID, gen, page, limit), payload, c.listTTL).Err(); err != nil {
		return fmt.Errorf("redis set todo list failed: %w", err)
	}
	return nil
}

func (c *TodoListCache) InvalidateUser(ctx context.Context, userID uint) error {
	if err := c.client.Incr(ctx, c.genKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis bump todo list generation failed: %w", err)
	}
	return nil
}

func (c *TodoListCache) generation(ctx context.Context, userID uint) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(userID)).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get todo list generation failed: %w", err)
	}
	return gen, nil
}

func (c *TodoListCache) listKey(userID uint, gen int64, page, limit int) string {
	return fmt.Sprintf("todos:list:%d:g%d:p%d:l%d", userID, gen, page, limit)
}

func (c *TodoListCache) genKey(userID uint) string {
	return fmt.Sprintf("todos:gen:%d", userID)
}
