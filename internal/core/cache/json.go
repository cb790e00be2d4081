package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, e
	}
	return &out, nil
}

// ListCache 把一个列表整体缓存在 "<key>:v<代数>" 下；写操作后代数 +1，
// 写之前已开始的回源只会写到旧代的 key，不会被之后的读取命中
type ListCache[T any] struct {
	c   *Cache
	key string
	ttl time.Duration
}

func NewListCache[T any](c *Cache, key string, ttl time.Duration) *ListCache[T] {
	return &ListCache[T]{c: c, key: key, ttl: ttl}
}

func (l *ListCache[T]) genKey() string { return l.key + ":gen" }

func (l *ListCache[T]) dataKey(ctx context.Context) (string, error) {
	gen, err := l.c.RDB.Get(ctx, l.genKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", l.key, gen), nil
}

// Load 永远返回非 nil 切片；redis 不可用时直接回源
func (l *ListCache[T]) Load(ctx context.Context, load func(context.Context) ([]T, error)) ([]T, error) {
	fill := func(ctx context.Context) (*[]T, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if v == nil {
			v = []T{}
		}
		return &v, nil
	}

	var p *[]T
	key, err := l.dataKey(ctx)
	if err != nil {
		p, err = fill(ctx)
	} else {
		p, err = GetOrLoadJSON[[]T](l.c, ctx, key, l.ttl, fill)
	}
	if err != nil {
		return nil, err
	}
	if p == nil || *p == nil {
		return []T{}, nil
	}
	return *p, nil
}

// Invalidate 代数 +1，旧代的数据等 ttl 过期
func (l *ListCache[T]) Invalidate(ctx context.Context) error {
	return l.c.RDB.Incr(ctx, l.genKey()).Err()
}
