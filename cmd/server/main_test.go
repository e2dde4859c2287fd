package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"pos-exit-checker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcStub answers eth_chainId and every eth_call with callResult.
func rpcStub(t *testing.T, callResult string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var result string
		switch req.Method {
		case "eth_chainId":
			result = "0x5"
		case "eth_call":
			result = callResult
		default:
			http.Error(w, "unexpected method "+req.Method, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%q}`, req.ID, result)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func stubListen(t *testing.T) (*atomic.Int32, <-chan struct{}) {
	t.Helper()

	var calls atomic.Int32
	bound := make(chan struct{}, 1)
	orig := listen
	listen = func(network, _ string) (net.Listener, error) {
		calls.Add(1)
		ln, err := net.Listen(network, "127.0.0.1:0")
		bound <- struct{}{}
		return ln, err
	}
	t.Cleanup(func() { listen = orig })
	return &calls, bound
}

func testConfig(rpcURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:                     "127.0.0.1",
			Port:                     "0",
			Mode:                     "test",
			StrictExitTimeValidation: true,
		},
		Chain: config.ChainConfig{
			Network:                 "testnet",
			Version:                 "mumbai",
			RootRPC:                 rpcURL,
			ChildRPC:                rpcURL,
			HeaderCacheSize:         8,
			RootChainAddress:        "0x0000000000000000000000000000000000000001",
			WithdrawManagerAddress:  "0x0000000000000000000000000000000000000002",
			RootChainManagerAddress: "0x0000000000000000000000000000000000000003",
		},
	}
}

func TestRunFailsBeforeListening(t *testing.T) {
	t.Run("root chain unreachable", func(t *testing.T) {
		calls, _ := stubListen(t)

		err := run(testConfig("http://127.0.0.1:1"), make(chan os.Signal))
		assert.ErrorContains(t, err, "failed to initialize bridge client")
		assert.Zero(t, calls.Load())
	})

	t.Run("withdraw manager returns nothing", func(t *testing.T) {
		calls, _ := stubListen(t)
		rpc := rpcStub(t, "0x")

		err := run(testConfig(rpc.URL), make(chan os.Signal))
		assert.ErrorContains(t, err, "failed to initialize bridge client")
		assert.Zero(t, calls.Load())
	})

	t.Run("network metadata unavailable", func(t *testing.T) {
		calls, _ := stubListen(t)
		meta := httptest.NewServer(http.NotFoundHandler())
		defer meta.Close()

		cfg := testConfig(rpcStub(t, fmt.Sprintf("0x%064x", 86400)).URL)
		cfg.Chain.NetworkMetaURL = meta.URL
		cfg.Chain.RootChainManagerAddress = ""

		err := run(cfg, make(chan os.Signal))
		assert.Error(t, err)
		assert.Zero(t, calls.Load())
	})
}

func TestRunServesUntilSignalled(t *testing.T) {
	calls, bound := stubListen(t)
	rpc := rpcStub(t, fmt.Sprintf("0x%064x", 86400))

	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- run(testConfig(rpc.URL), stop) }()

	select {
	case <-bound:
	case err := <-done:
		t.Fatalf("run returned before listening: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server never started listening")
	}
	assert.Equal(t, int32(1), calls.Load())

	stop <- syscall.SIGTERM
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after the signal")
	}
}
