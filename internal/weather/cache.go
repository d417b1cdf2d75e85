package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheTTL = 10 * time.Minute

// Cache guarda respuestas formateadas en Redis con TTL. Un fallo de
// Redis nunca tumba la petición: se registra y se sigue contra el
// proveedor.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, ttl: cacheTTL}
}

func cacheKey(ciudad string) string {
	return "weather:" + strings.ToLower(ciudad)
}

func (c *Cache) Get(ctx context.Context, ciudad string) (*Datos, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(ciudad)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("fallo leyendo la caché de clima", "ciudad", ciudad, "error", err)
		}
		return nil, false
	}
	var d Datos
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (c *Cache) Set(ctx context.Context, ciudad string, d *Datos) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(ciudad), raw, c.ttl).Err(); err != nil {
		slog.Warn("fallo escribiendo la caché de clima", "ciudad", ciudad, "error", err)
	}
}
