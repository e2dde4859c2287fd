package plasma

import (
	"context"
	"fmt"

	"pos-exit-checker/internal/config"
	"pos-exit-checker/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
)

// POSClient is the asset exit handle answering whether a burn was exited.
type POSClient struct {
	connector
	rootChainManager *contract
}

// NewPOSClient 创建 POS 客户端，使用前必须调用 Initialize
func NewPOSClient(cfg *config.ChainConfig) *POSClient {
	return &POSClient{
		connector: newConnector("pos", cfg),
	}
}

func (p *POSClient) Initialize(ctx context.Context) error {
	if err := p.connect(ctx); err != nil {
		logger.Error("POSClient Initialize Error: ", err)
		return err
	}

	p.rootChainManager = newContract(p.addrs.RootChainManager, parsedRootChainManagerABI, p.root)
	logger.Info("POSClient initialized", "root_chain_manager", p.addrs.RootChainManager.Hex())
	return nil
}

// IsExitProcessed reports whether the ERC20 burn has been exited on the root chain.
func (p *POSClient) IsExitProcessed(ctx context.Context, burnTxHash string) (bool, error) {
	return p.isExitProcessed(ctx, burnTxHash, ERC20TransferEventSig)
}

func (p *POSClient) isExitProcessed(ctx context.Context, burnTxHash string, eventSig common.Hash) (bool, error) {
	if err := p.ready(); err != nil {
		return false, err
	}

	exitHash, err := p.exitHash(ctx, burnTxHash, eventSig)
	if err != nil {
		return false, err
	}

	processed, err := p.rootChainManager.callBool(ctx, "processedExits", [32]byte(exitHash))
	if err != nil {
		return false, err
	}

	logger.Debug("isExitProcessed", "burn_tx", burnTxHash, "exit_hash", exitHash.Hex(), "processed", processed)
	return processed, nil
}

func (p *POSClient) exitHash(ctx context.Context, burnTxHash string, eventSig common.Hash) (common.Hash, error) {
	hash, err := ParseHash(burnTxHash)
	if err != nil {
		return common.Hash{}, err
	}

	r, err := receipt(ctx, p.child, hash)
	if err != nil {
		return common.Hash{}, err
	}

	lastChildBlock, err := p.rootChain.LastChildBlock(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	blockNumber := r.BlockNumber.Uint64()
	if lastChildBlock < blockNumber {
		return common.Hash{}, fmt.Errorf("block %d > last child block %d: %w", blockNumber, lastChildBlock, ErrNotCheckpointed)
	}

	logIndex, err := logIndexOf(r, eventSig)
	if err != nil {
		return common.Hash{}, err
	}

	return ExitHash(blockNumber, r.TransactionIndex, logIndex)
}
