package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Limitador de janela fixa no Redis para a API pública de agendamento.
// Se o Redis estiver fora, deixamos passar: nunca derrubar a API por
// causa do limitador.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	log    *zap.Logger
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, log: log}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		key := "rl:public:" + c.ClientIP()

		count, err := rl.incr(c, key)
		if err != nil {
			rl.log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too_many_requests",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) incr(c *gin.Context, key string) (int64, error) {
	ms := rl.window.Milliseconds()

	res, err := fixedWindowScript.Run(c.Request.Context(), rl.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, nil
	}
}
