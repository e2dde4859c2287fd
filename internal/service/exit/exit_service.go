package exit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pos-exit-checker/internal/repository/exitcache"
	"pos-exit-checker/internal/types"
	"pos-exit-checker/pkg/logger"
	"pos-exit-checker/pkg/plasma"
)

// ExitProcessedChecker 查询 burn 交易是否已在根链退出
type ExitProcessedChecker interface {
	IsExitProcessed(ctx context.Context, burnTxHash string) (bool, error)
}

// ExitTimeProvider 查询提现的挑战期结束时间
type ExitTimeProvider interface {
	GetExitTime(ctx context.Context, burnTxHash, confirmTxHash string) (*plasma.ExitTime, error)
}

// Service 退出查询服务接口
type Service interface {
	CheckExit(ctx context.Context, txHash string) (*types.ExitCheckResponse, error)
	CheckExitTime(ctx context.Context, burnTxHash, confirmTxHash string) (*types.ExitTimeResponse, error)
}

type service struct {
	checker ExitProcessedChecker
	timer   ExitTimeProvider
	cache   exitcache.Repository
	now     func() time.Time
}

// Option 服务可选项
type Option func(*service)

// WithClock 替换时钟
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithCache 启用已退出结果缓存
func WithCache(cache exitcache.Repository) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// NewService 创建退出查询服务
func NewService(checker ExitProcessedChecker, timer ExitTimeProvider, opts ...Option) Service {
	s := &service{
		checker: checker,
		timer:   timer,
		cache:   exitcache.NewNoopRepository(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckExit 查询 burn 交易是否已退出
func (s *service) CheckExit(ctx context.Context, txHash string) (*types.ExitCheckResponse, error) {
	// 缓存失败不影响请求
	if exited, err := s.cache.IsExited(ctx, txHash); err == nil && exited {
		logger.Debug("CheckExit cache hit", "tx_hash", txHash)
		return exitedResponse(true), nil
	}

	exited, err := s.checker.IsExitProcessed(ctx, txHash)
	if err != nil {
		logger.Error("CheckExit Error: ", err, "tx_hash", txHash)
		return nil, fmt.Errorf("failed to check exit: %w", err)
	}

	if exited {
		_ = s.cache.MarkExited(ctx, txHash)
	}

	logger.Info("CheckExit: ", "tx_hash", txHash, "exited", exited)
	return exitedResponse(exited), nil
}

func exitedResponse(exited bool) *types.ExitCheckResponse {
	if exited {
		return &types.ExitCheckResponse{Code: types.CodeExited, Msg: types.MsgExited}
	}
	return &types.ExitCheckResponse{Code: types.CodeNotExited, Msg: types.MsgNotExited}
}

// CheckExitTime 查询提现是否已度过挑战期
func (s *service) CheckExitTime(ctx context.Context, burnTxHash, confirmTxHash string) (*types.ExitTimeResponse, error) {
	et, err := s.timer.GetExitTime(ctx, burnTxHash, confirmTxHash)
	if err != nil {
		logger.Error("CheckExitTime Error: ", err, "burn_tx_hash", burnTxHash, "confirm_tx_hash", confirmTxHash)
		return nil, fmt.Errorf("failed to get exit time: %w", err)
	}

	logger.Info("CheckExitTime: ", "burn_tx_hash", burnTxHash, "exitable", et.Exitable, "exit_time", et.ExitTime)

	if et.Exitable {
		return &types.ExitTimeResponse{
			Code: types.CodeExited,
			Msg:  strconv.FormatInt(s.now().Unix(), 10),
		}, nil
	}

	return &types.ExitTimeResponse{
		Code: types.CodeNotExited,
		Msg:  strconv.FormatUint(et.ExitTime, 10),
	}, nil
}
