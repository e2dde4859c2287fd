package plasma

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"pos-exit-checker/pkg/logger"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Backend is the subset of an ethclient both handles depend on.
type Backend interface {
	ethereum.ContractCaller
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

type dialFunc func(ctx context.Context, rawURL string) (Backend, error)

// Dial 按 URL 前缀选择传输方式：http 前缀走 HTTP，其余走 WebSocket
func Dial(ctx context.Context, rawURL string) (Backend, error) {
	var (
		rc  *rpc.Client
		err error
	)

	if strings.HasPrefix(rawURL, "http") {
		rc, err = rpc.DialHTTP(rawURL)
	} else {
		rc, err = rpc.DialWebsocket(ctx, rawURL, "")
	}
	if err != nil {
		logger.Error("Dial", err, "rpc_url", maskURL(rawURL))
		return nil, fmt.Errorf("failed to dial %s: %w", maskURL(rawURL), err)
	}

	return ethclient.NewClient(rc), nil
}

// dialAndPing 连接并通过 ChainID 测试连通性
func dialAndPing(ctx context.Context, dial dialFunc, rawURL string) (Backend, *big.Int, error) {
	client, err := dial(ctx, rawURL)
	if err != nil {
		return nil, nil, err
	}

	// 测试连接
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	chainID, err := client.ChainID(pingCtx)
	if err != nil {
		client.Close()
		logger.Error("dialAndPing", err, "rpc_url", maskURL(rawURL))
		return nil, nil, fmt.Errorf("failed to get chain ID for %s: %w", maskURL(rawURL), err)
	}

	logger.Info("Successfully connected to chain", "chain_id", chainID.String(), "rpc_url", maskURL(rawURL))
	return client, chainID, nil
}

// maskURL 遮蔽URL中的API密钥用于日志记录
func maskURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) > 0 {
		lastPart := parts[len(parts)-1]
		if len(lastPart) > 8 {
			parts[len(parts)-1] = lastPart[:4] + "****" + lastPart[len(lastPart)-4:]
		}
	}
	return strings.Join(parts, "/")
}
