package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openmuse/openmuse-backend/internal/logger"
)

// VideoURLService resolves a stored video reference into a publicly
// fetchable URL. Keys that are already absolute URLs pass through
// unchanged. Resolved URLs are cached in Redis when REDIS_ADDR is set;
// without it the service still works, just without the cache.
type VideoURLService interface {
	Resolve(ctx context.Context, storageKey string) (string, error)
}

type videoURLService struct {
	log      *logger.Logger
	bucket   BucketService
	rdb      *goredis.Client
	cacheTTL time.Duration
}

func NewVideoURLService(log *logger.Logger, bucket BucketService) VideoURLService {
	serviceLog := log.With("service", "VideoURLService")

	var rdb *goredis.Client
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			serviceLog.Warn("Redis unreachable, video URL cache disabled", "error", err)
			_ = rdb.Close()
			rdb = nil
		}
	}

	return &videoURLService{
		log:      serviceLog,
		bucket:   bucket,
		rdb:      rdb,
		cacheTTL: time.Hour,
	}
}

func (s *videoURLService) Resolve(ctx context.Context, storageKey string) (string, error) {
	storageKey = strings.TrimSpace(storageKey)
	if storageKey == "" {
		return "", fmt.Errorf("empty storage key")
	}
	if strings.HasPrefix(storageKey, "http://") || strings.HasPrefix(storageKey, "https://") {
		return storageKey, nil
	}

	cacheKey := "videourl:" + storageKey
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	if s.bucket == nil {
		return "", fmt.Errorf("no bucket service configured for key %q", storageKey)
	}
	url := s.bucket.GetPublicURL(storageKey)
	if url == "" {
		return "", fmt.Errorf("could not resolve storage key %q", storageKey)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey, url, s.cacheTTL).Err(); err != nil {
			s.log.Debug("Failed to cache resolved URL", "key", storageKey, "error", err)
		}
	}
	return url, nil
}
