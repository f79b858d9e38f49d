// Package cache implementa ports.ReportCache sobre Redis con claves versionadas.
// Invalidar es incrementar la versión: las claves viejas expiran solas por TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ceramic-erp/internal/application/ports"
)

const versionKey = "ceramic-erp:reports:version"

var _ ports.ReportCache = (*RedisReportCache)(nil)
var _ ports.ReportCache = Noop{}

// RedisReportCache caché de reportes en Redis.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache construye la caché sobre un cliente existente.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

// NewRedisClient cliente con la configuración de la app.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Ping comprueba la conexión (arranque).
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// Version versión vigente; la inicializa en 1 si falta.
func (c *RedisReportCache) Version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SETNX: si otro proceso la creó primero se respeta su valor.
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

func (c *RedisReportCache) Key(ctx context.Context, parts ...string) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ceramic-erp:reports:%s:v%d", strings.Join(parts, ":"), ver), nil
}

func (c *RedisReportCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *RedisReportCache) Bump(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

// Noop caché desactivada: siempre llama al loader.
type Noop struct{}

func (Noop) Key(_ context.Context, parts ...string) (string, error) {
	return strings.Join(parts, ":"), nil
}

func (Noop) FetchJSON(ctx context.Context, _ string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (Noop) Bump(context.Context) error { return nil }
