package plasma

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pos-exit-checker/internal/config"
	"pos-exit-checker/pkg/logger"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// connector holds the root/child connections shared by both handles.
type connector struct {
	name       string
	cfg        *config.ChainConfig
	dial       dialFunc
	httpClient *http.Client

	root      Backend
	child     Backend
	addrs     *Addresses
	rootChain *RootChain
}

func newConnector(name string, cfg *config.ChainConfig) connector {
	return connector{
		name: name,
		cfg:  cfg,
		dial: Dial,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// connect resolves contract addresses and dials both chains.
func (c *connector) connect(ctx context.Context) error {
	addrs, err := ResolveAddresses(ctx, c.cfg, c.httpClient)
	if err != nil {
		return fmt.Errorf("%s: failed to resolve contract addresses: %w", c.name, err)
	}

	root, _, err := dialAndPing(ctx, c.dial, c.cfg.RootRPC)
	if err != nil {
		return fmt.Errorf("%s: root chain: %w", c.name, err)
	}

	child, _, err := dialAndPing(ctx, c.dial, c.cfg.ChildRPC)
	if err != nil {
		root.Close()
		return fmt.Errorf("%s: child chain: %w", c.name, err)
	}

	rootChain, err := NewRootChain(addrs.RootChain, root, c.cfg.HeaderCacheSize)
	if err != nil {
		root.Close()
		child.Close()
		return err
	}

	c.root, c.child, c.addrs, c.rootChain = root, child, addrs, rootChain
	return nil
}

func (c *connector) ready() error {
	if c.rootChain == nil {
		return fmt.Errorf("%s: %w", c.name, ErrNotInitialized)
	}
	return nil
}

// Close 关闭所有连接
func (c *connector) Close() {
	if c.root != nil {
		c.root.Close()
	}
	if c.child != nil {
		c.child.Close()
	}
	logger.Info("Closed RPC clients", "client", c.name)
}

// receipt fetches a mined, successful receipt.
func receipt(ctx context.Context, backend Backend, hash common.Hash) (*types.Receipt, error) {
	r, err := backend.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%s: %w", hash.Hex(), ErrTxNotFound)
		}
		return nil, fmt.Errorf("failed to get receipt %s: %w", hash.Hex(), err)
	}
	if r == nil || r.BlockNumber == nil {
		return nil, fmt.Errorf("%s: %w", hash.Hex(), ErrTxNotFound)
	}
	if r.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s: %w", hash.Hex(), ErrTxFailed)
	}
	return r, nil
}
