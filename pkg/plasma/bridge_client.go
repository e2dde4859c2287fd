package plasma

import (
	"context"
	"fmt"
	"time"

	"pos-exit-checker/internal/config"
	"pos-exit-checker/pkg/logger"
)

// ExitTime is when a plasma withdrawal leaves its challenge period.
type ExitTime struct {
	ExitTime uint64 // unix seconds
	Exitable bool
}

// BridgeClient is the general bridge handle used for challenge period queries.
type BridgeClient struct {
	connector
	now func() time.Time

	withdrawManager *contract
	halfExitPeriod  uint64
}

// NewBridgeClient 创建桥接客户端，使用前必须调用 Initialize
func NewBridgeClient(cfg *config.ChainConfig) *BridgeClient {
	return &BridgeClient{
		connector: newConnector("bridge", cfg),
		now:       time.Now,
	}
}

// Initialize connects both chains and reads HALF_EXIT_PERIOD. Callers treat
// any error as fatal.
func (b *BridgeClient) Initialize(ctx context.Context) error {
	if err := b.connect(ctx); err != nil {
		logger.Error("BridgeClient Initialize Error: ", err)
		return err
	}

	b.withdrawManager = newContract(b.addrs.WithdrawManager, parsedWithdrawManagerABI, b.root)

	half, err := b.withdrawManager.callUint64(ctx, "HALF_EXIT_PERIOD")
	if err != nil {
		b.Close()
		logger.Error("BridgeClient Initialize Error: ", err)
		return fmt.Errorf("bridge: failed to read HALF_EXIT_PERIOD: %w", err)
	}
	b.halfExitPeriod = half

	logger.Info("BridgeClient initialized", "network", b.cfg.Network, "version", b.cfg.Version, "half_exit_period", half)
	return nil
}

// GetExitTime computes when the withdrawal burnt by burnTxHash on the child
// chain and confirmed by confirmTxHash on the root chain becomes exitable:
// max(checkpoint.createdAt + 2*HALF_EXIT_PERIOD, confirmTime + HALF_EXIT_PERIOD).
func (b *BridgeClient) GetExitTime(ctx context.Context, burnTxHash, confirmTxHash string) (*ExitTime, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}

	burnHash, err := ParseHash(burnTxHash)
	if err != nil {
		return nil, err
	}
	confirmHash, err := ParseHash(confirmTxHash)
	if err != nil {
		return nil, err
	}

	confirmReceipt, err := receipt(ctx, b.root, confirmHash)
	if err != nil {
		return nil, err
	}
	confirmHeader, err := b.root.HeaderByNumber(ctx, confirmReceipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get confirm block %s: %w", confirmReceipt.BlockNumber, err)
	}

	burnReceipt, err := receipt(ctx, b.child, burnHash)
	if err != nil {
		return nil, err
	}

	headerID, err := b.rootChain.FindHeaderBlockNumber(ctx, burnReceipt.BlockNumber.Uint64())
	if err != nil {
		return nil, err
	}
	headerBlock, err := b.rootChain.HeaderBlock(ctx, headerID)
	if err != nil {
		return nil, err
	}

	exitTime := max(headerBlock.CreatedAt+2*b.halfExitPeriod, confirmHeader.Time+b.halfExitPeriod)

	return &ExitTime{
		ExitTime: exitTime,
		Exitable: uint64(b.now().Unix()) >= exitTime,
	}, nil
}
