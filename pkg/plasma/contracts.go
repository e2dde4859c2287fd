package plasma

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const rootChainABI = `[
	{"inputs":[],"name":"currentHeaderBlock","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getLastChildBlock","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"","type":"uint256"}],"name":"headerBlocks","outputs":[
		{"name":"root","type":"bytes32"},
		{"name":"start","type":"uint256"},
		{"name":"end","type":"uint256"},
		{"name":"createdAt","type":"uint256"},
		{"name":"proposer","type":"address"}
	],"stateMutability":"view","type":"function"}
]`

const withdrawManagerABI = `[
	{"inputs":[],"name":"HALF_EXIT_PERIOD","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const rootChainManagerABI = `[
	{"inputs":[{"name":"","type":"bytes32"}],"name":"processedExits","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

var (
	parsedRootChainABI        = mustParseABI(rootChainABI)
	parsedWithdrawManagerABI  = mustParseABI(withdrawManagerABI)
	parsedRootChainManagerABI = mustParseABI(rootChainManagerABI)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid contract abi: %v", err))
	}
	return parsed
}

// contract is a read-only binding over eth_call.
type contract struct {
	address common.Address
	abi     abi.ABI
	caller  ethereum.ContractCaller
}

func newContract(address common.Address, parsed abi.ABI, caller ethereum.ContractCaller) *contract {
	return &contract{address: address, abi: parsed, caller: caller}
}

func (c *contract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	to := c.address
	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s on %s: %w", method, c.address.Hex(), err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s on %s: %w", method, c.address.Hex(), ErrEmptyResult)
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return values, nil
}

func (c *contract) callUint64(ctx context.Context, method string, args ...interface{}) (uint64, error) {
	values, err := c.call(ctx, method, args...)
	if err != nil {
		return 0, err
	}

	v, ok := values[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected %s result type %T", method, values[0])
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%s result %s overflows uint64", method, v)
	}
	return v.Uint64(), nil
}

func (c *contract) callBool(ctx context.Context, method string, args ...interface{}) (bool, error) {
	values, err := c.call(ctx, method, args...)
	if err != nil {
		return false, err
	}

	v, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected %s result type %T", method, values[0])
	}
	return v, nil
}
