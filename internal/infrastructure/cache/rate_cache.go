package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/comisiones-api/internal/application/pricing"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

const claveCotizacion = "comisiones:cotizacion:oficial"

var _ pricing.ExchangeRateProvider = (*RateCache)(nil)

// RateCache decora un ExchangeRateProvider con un cache TTL en Redis.
// Si Redis no responde se consulta el proveedor directo; el cache nunca
// bloquea un cálculo.
type RateCache struct {
	inner pricing.ExchangeRateProvider
	rdb   *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

func NewRateCache(inner pricing.ExchangeRateProvider, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RateCache {
	return &RateCache{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func (c *RateCache) Cotizacion(ctx context.Context) (*pricing.Cotizacion, error) {
	if raw, err := c.rdb.Get(ctx, claveCotizacion).Bytes(); err == nil {
		var cot pricing.Cotizacion
		if err := json.Unmarshal(raw, &cot); err == nil {
			return &cot, nil
		}
		// Entrada corrupta: se descarta y se vuelve al proveedor.
		c.rdb.Del(ctx, claveCotizacion)
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Msg("redis no disponible para cotización")
	}

	cot, err := c.inner.Cotizacion(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(cot); err == nil {
		if err := c.rdb.Set(ctx, claveCotizacion, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo cachear la cotización")
		}
	}
	return cot, nil
}
