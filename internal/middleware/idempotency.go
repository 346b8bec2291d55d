package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour

	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"
)

// Idempotency men-cache hasil POST per (route, user, Idempotency-Key).
// Request tanpa header diteruskan apa adanya.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		ctx := c.Request.Context()
		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		// SetNX dengan TTL pendek agar lock hilang sendiri kalau proses crash
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// redis bermasalah, jangan blokir request
			zap.L().Warn("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			abortWithError(c, ErrProcessing, nil)
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()
	}
}

// ReleaseIdempotency dipanggil handler setelah selesai (defer).
func ReleaseIdempotency(c *gin.Context, rdb *redis.Client) {
	lockKey := c.GetString(IdempotencyLockKey)
	if rdb == nil || lockKey == "" {
		return
	}
	rdb.Del(c.Request.Context(), lockKey)
}

// StoreIdempotentResult menyimpan payload sukses untuk replay.
func StoreIdempotentResult(c *gin.Context, rdb *redis.Client, payload any) {
	cacheKey := c.GetString(IdempotencyCacheKey)
	if rdb == nil || cacheKey == "" {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	rdb.Set(c.Request.Context(), cacheKey, raw, idempotencyCacheTTL)
}
