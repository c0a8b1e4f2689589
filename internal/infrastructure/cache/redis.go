// Package cache implementa la caché de lectura de la carta pública sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/pkg/config"
)

var _ ports.MenuCache = (*MenuCache)(nil)

const (
	publicMenuVersionKey = "menu:public:version"
	publicMenuKeyPrefix  = "menu:public:v"
)

func publicMenuKey(version int64) string {
	return publicMenuKeyPrefix + strconv.FormatInt(version, 10)
}

// client subconjunto de redis.Cmdable que usa la caché.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// MenuCache guarda la carta pública serializada en JSON con TTL, bajo una clave por versión.
// Invalidar incrementa el contador de versión; las entradas viejas expiran solas.
type MenuCache struct {
	rdb client
	ttl time.Duration
}

// NewMenuCache construye la caché sobre un cliente Redis.
func NewMenuCache(rdb client, ttl time.Duration) *MenuCache {
	return &MenuCache{rdb: rdb, ttl: ttl}
}

// Connect abre el cliente Redis y verifica la conexión con PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return rdb, nil
}

// GetPublicMenu devuelve la carta cacheada para la versión vigente. Una clave inexistente
// no es error.
func (c *MenuCache) GetPublicMenu(ctx context.Context) ([]dto.MenuItemResponse, int64, bool, error) {
	version, err := c.rdb.Get(ctx, publicMenuVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		version, err = 0, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis get %s: %w", publicMenuVersionKey, err)
	}

	key := publicMenuKey(version)
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var items []dto.MenuItemResponse
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, version, false, fmt.Errorf("decodificar carta cacheada: %w", err)
	}
	return items, version, true, nil
}

// SetPublicMenu guarda la carta de la versión dada con el TTL configurado.
func (c *MenuCache) SetPublicMenu(ctx context.Context, version int64, items []dto.MenuItemResponse) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, publicMenuKey(version), data, c.ttl).Err()
}

// InvalidatePublicMenu avanza la versión de la carta.
func (c *MenuCache) InvalidatePublicMenu(ctx context.Context) error {
	return c.rdb.Incr(ctx, publicMenuVersionKey).Err()
}
