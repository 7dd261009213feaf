// Package cartstore keeps session carts in Redis as JSON documents under
// cart:<sessionKey>. Every write refreshes the expiry.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 7 * 24 * time.Hour

type lineDTO struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl,omitempty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Stock          int    `json:"stock"`
	Quantity       int    `json:"quantity"`
}

type cartDTO struct {
	Lines []lineDTO `json:"lines"`
}

// RedisCartStore implements CartStore on a Redis client.
type RedisCartStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCartStore uses DefaultTTL when ttl is not positive.
func NewRedisCartStore(client redis.Cmdable, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCartStore{client: client, ttl: ttl}
}

// Get returns an empty cart when none is stored or the stored one expired.
func (s *RedisCartStore) Get(ctx context.Context, sessionKey string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, key(sessionKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var dto cartDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, err := cart.RestoreLine(cart.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			ImageURL:  l.ImageURL,
			UnitPrice: kernel.MoneyFromCents(l.UnitPriceCents),
			Stock:     l.Stock,
		}, l.Quantity)
		if err != nil {
			return nil, fmt.Errorf("restore cart line %s: %w", l.ProductID, err)
		}
		lines = append(lines, line)
	}
	return cart.RestoreCart(lines)
}

// Set replaces the stored cart. An empty cart removes the key.
func (s *RedisCartStore) Set(ctx context.Context, sessionKey string, c *cart.Cart) error {
	if c.IsEmpty() {
		return s.Clear(ctx, sessionKey)
	}

	dto := cartDTO{Lines: make([]lineDTO, 0, len(c.Lines()))}
	for _, l := range c.Lines() {
		dto.Lines = append(dto.Lines, lineDTO{
			ProductID:      l.ProductID(),
			Name:           l.Name(),
			ImageURL:       l.ImageURL(),
			UnitPriceCents: l.UnitPrice().Cents(),
			Stock:          l.Stock(),
			Quantity:       l.Quantity(),
		})
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, key(sessionKey), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Clear(ctx context.Context, sessionKey string) error {
	if err := s.client.Del(ctx, key(sessionKey)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

func key(sessionKey string) string {
	return "cart:" + sessionKey
}
