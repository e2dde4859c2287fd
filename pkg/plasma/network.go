package plasma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pos-exit-checker/internal/config"
	"pos-exit-checker/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
)

const metaFetchRetries = 3

// Addresses 桥接合约地址
type Addresses struct {
	RootChain        common.Address
	WithdrawManager  common.Address
	RootChainManager common.Address
}

// networkMeta is the part of the published network index we read.
type networkMeta struct {
	Main struct {
		Contracts struct {
			RootChainProxy       string `json:"RootChainProxy"`
			WithdrawManagerProxy string `json:"WithdrawManagerProxy"`
		} `json:"Contracts"`
		POSContracts struct {
			RootChainManagerProxy string `json:"RootChainManagerProxy"`
		} `json:"POSContracts"`
	} `json:"Main"`
}

// ResolveAddresses 解析合约地址：配置覆盖优先，缺失的从网络元数据获取
func ResolveAddresses(ctx context.Context, cfg *config.ChainConfig, httpClient *http.Client) (*Addresses, error) {
	rootChain := cfg.RootChainAddress
	withdrawManager := cfg.WithdrawManagerAddress
	rootChainManager := cfg.RootChainManagerAddress

	if rootChain == "" || withdrawManager == "" || rootChainManager == "" {
		meta, err := fetchNetworkMeta(ctx, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		if rootChain == "" {
			rootChain = meta.Main.Contracts.RootChainProxy
		}
		if withdrawManager == "" {
			withdrawManager = meta.Main.Contracts.WithdrawManagerProxy
		}
		if rootChainManager == "" {
			rootChainManager = meta.Main.POSContracts.RootChainManagerProxy
		}
	}

	addrs := &Addresses{}
	for _, a := range []struct {
		name  string
		value string
		dst   *common.Address
	}{
		{"RootChainProxy", rootChain, &addrs.RootChain},
		{"WithdrawManagerProxy", withdrawManager, &addrs.WithdrawManager},
		{"RootChainManagerProxy", rootChainManager, &addrs.RootChainManager},
	} {
		if !common.IsHexAddress(a.value) {
			return nil, fmt.Errorf("invalid %s address %q", a.name, a.value)
		}
		*a.dst = common.HexToAddress(a.value)
	}

	logger.Info("ResolveAddresses: ",
		"root_chain", addrs.RootChain.Hex(),
		"withdraw_manager", addrs.WithdrawManager.Hex(),
		"root_chain_manager", addrs.RootChainManager.Hex())
	return addrs, nil
}

func fetchNetworkMeta(ctx context.Context, cfg *config.ChainConfig, httpClient *http.Client) (*networkMeta, error) {
	url := fmt.Sprintf("%s/%s/%s/index.json", cfg.NetworkMetaURL, cfg.Network, cfg.Version)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond

	meta, err := backoff.RetryWithData(func() (*networkMeta, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			logger.Warn("fetchNetworkMeta", "url", url, "error", err.Error())
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("network metadata %s: status %d", url, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return nil, backoff.Permanent(fmt.Errorf("network metadata %s: status %d", url, resp.StatusCode))
		}

		var m networkMeta
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to decode network metadata: %w", err))
		}
		return &m, nil
	}, backoff.WithContext(backoff.WithMaxRetries(policy, metaFetchRetries), ctx))
	if err != nil {
		logger.Error("fetchNetworkMeta", err, "url", url)
		return nil, err
	}

	return meta, nil
}
