package plasma

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type methodFunc func(args []interface{}) ([]interface{}, error)

type fakeContract struct {
	abi     abi.ABI
	methods map[string]methodFunc
}

type fakeBackend struct {
	mu        sync.Mutex
	chainID   *big.Int
	chainErr  error
	receipts  map[common.Hash]*types.Receipt
	headers   map[uint64]*types.Header
	contracts map[common.Address]*fakeContract
	calls     map[string]int
	closed    bool
}

func newFakeBackend(chainID int64) *fakeBackend {
	return &fakeBackend{
		chainID:   big.NewInt(chainID),
		receipts:  make(map[common.Hash]*types.Receipt),
		headers:   make(map[uint64]*types.Header),
		contracts: make(map[common.Address]*fakeContract),
		calls:     make(map[string]int),
	}
}

func (f *fakeBackend) deploy(addr common.Address, parsed abi.ABI, methods map[string]methodFunc) {
	f.contracts[addr] = &fakeContract{abi: parsed, methods: methods}
}

func (f *fakeBackend) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	c, ok := f.contracts[*msg.To]
	if !ok {
		return nil, nil
	}

	m, err := c.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := m.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls[m.Name]++
	f.mu.Unlock()

	fn, ok := c.methods[m.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	out, err := fn(args)
	if err != nil {
		return nil, err
	}
	return m.Outputs.Pack(out...)
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	r, ok := f.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (f *fakeBackend) HeaderByNumber(_ context.Context, number *big.Int) (*types.Header, error) {
	h, ok := f.headers[number.Uint64()]
	if !ok {
		return nil, ethereum.NotFound
	}
	return h, nil
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return f.chainID, nil
}

func (f *fakeBackend) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeBackend) addReceipt(hash common.Hash, block uint64, txIndex uint, logs ...*types.Log) {
	f.receipts[hash] = &types.Receipt{
		Status:           types.ReceiptStatusSuccessful,
		TxHash:           hash,
		BlockNumber:      new(big.Int).SetUint64(block),
		TransactionIndex: txIndex,
		Logs:             logs,
	}
}

type checkpoint struct {
	start, end, createdAt uint64
}

// deployRootChain serves checkpoints[i] as header block (i+1)*CheckpointIDInterval.
func (f *fakeBackend) deployRootChain(addr common.Address, lastChildBlock uint64, checkpoints ...checkpoint) {
	f.deploy(addr, parsedRootChainABI, map[string]methodFunc{
		"currentHeaderBlock": func([]interface{}) ([]interface{}, error) {
			return []interface{}{big.NewInt(int64(len(checkpoints)) * CheckpointIDInterval)}, nil
		},
		"getLastChildBlock": func([]interface{}) ([]interface{}, error) {
			return []interface{}{new(big.Int).SetUint64(lastChildBlock)}, nil
		},
		"headerBlocks": func(args []interface{}) ([]interface{}, error) {
			id := args[0].(*big.Int).Uint64()
			zero := []interface{}{[32]byte{}, big.NewInt(0), big.NewInt(0), big.NewInt(0), common.Address{}}
			if id%CheckpointIDInterval != 0 {
				return zero, nil
			}
			i := id / CheckpointIDInterval
			if i == 0 || i > uint64(len(checkpoints)) {
				return zero, nil
			}
			cp := checkpoints[i-1]
			return []interface{}{
				[32]byte{byte(i)},
				new(big.Int).SetUint64(cp.start),
				new(big.Int).SetUint64(cp.end),
				new(big.Int).SetUint64(cp.createdAt),
				common.HexToAddress("0x00000000000000000000000000000000000000aa"),
			}, nil
		},
	})
}
