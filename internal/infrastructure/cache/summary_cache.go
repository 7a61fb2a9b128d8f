// Package cache implementa la caché Redis del resumen de stock por sede.
// Si Redis no está configurado la caché es un no-op y las lecturas van a la DB.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/salon-pro/internal/application/dto"
	"github.com/tu-usuario/salon-pro/pkg/config"
)

const summaryKey = "inventory:summary:locations"

// NewClient conecta a Redis con la configuración de la app y verifica con Ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SummaryCache caché del resumen de stock por sede. Con client nil todo es no-op.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache construye la caché. client nil desactiva la caché sin romper el flujo.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// Get devuelve el resumen cacheado, o nil si no hay entrada (o la caché está desactivada).
func (c *SummaryCache) Get(ctx context.Context) (*dto.StockSummaryResponse, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get summary cache: %w", err)
	}
	var summary dto.StockSummaryResponse
	if err := json.Unmarshal(raw, &summary); err != nil {
		// Entrada corrupta: se descarta y se vuelve a la DB.
		_ = c.client.Del(ctx, summaryKey).Err()
		return nil, nil
	}
	return &summary, nil
}

// Set guarda el resumen con el TTL configurado.
func (c *SummaryCache) Set(ctx context.Context, summary *dto.StockSummaryResponse) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set summary cache: %w", err)
	}
	return nil
}

// Invalidate borra el resumen cacheado. Se llama después de cada ajuste de stock.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, summaryKey).Err(); err != nil {
		return fmt.Errorf("invalidate summary cache: %w", err)
	}
	return nil
}
