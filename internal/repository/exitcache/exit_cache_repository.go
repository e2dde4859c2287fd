package exitcache

import (
	"context"
	"errors"
	"strings"
	"time"

	"pos-exit-checker/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pos-exit-checker:exited:"

// Repository 已退出 burn 交易缓存接口
// 只缓存终态（已退出），未退出的结果随时可能变化
type Repository interface {
	IsExited(ctx context.Context, txHash string) (bool, error)
	MarkExited(ctx context.Context, txHash string) error
}

type repository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepository 创建 Redis 缓存仓库
func NewRepository(client *redis.Client, ttl time.Duration) Repository {
	return &repository{
		client: client,
		ttl:    ttl,
	}
}

func key(txHash string) string {
	return keyPrefix + strings.ToLower(txHash)
}

// IsExited 查询缓存
func (r *repository) IsExited(ctx context.Context, txHash string) (bool, error) {
	_, err := r.client.Get(ctx, key(txHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		logger.Error("IsExited Error: ", err, "tx_hash", txHash)
		return false, err
	}
	return true, nil
}

// MarkExited 写入缓存
func (r *repository) MarkExited(ctx context.Context, txHash string) error {
	if err := r.client.Set(ctx, key(txHash), "1", r.ttl).Err(); err != nil {
		logger.Error("MarkExited Error: ", err, "tx_hash", txHash)
		return err
	}
	logger.Info("MarkExited: ", "tx_hash", txHash, "ttl", r.ttl.String())
	return nil
}

type noopRepository struct{}

// NewNoopRepository 未启用 Redis 时使用
func NewNoopRepository() Repository {
	return noopRepository{}
}

func (noopRepository) IsExited(context.Context, string) (bool, error) { return false, nil }

func (noopRepository) MarkExited(context.Context, string) error { return nil }
