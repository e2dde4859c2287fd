package plasma

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
)

// CheckpointIDInterval is the spacing between consecutive header block ids.
const CheckpointIDInterval = 10000

// HeaderBlock is a checkpoint submitted to the root chain.
type HeaderBlock struct {
	Root      common.Hash
	Start     uint64
	End       uint64
	CreatedAt uint64
	Proposer  common.Address
}

// Contains reports whether a child block is covered by the checkpoint.
func (h *HeaderBlock) Contains(childBlock uint64) bool {
	return h.Start <= childBlock && childBlock <= h.End
}

// RootChain wraps the checkpoint contract on the root chain.
type RootChain struct {
	contract *contract
	headers  *lru.Cache
}

// NewRootChain binds the checkpoint contract. A cacheSize <= 0 disables caching.
func NewRootChain(address common.Address, caller ethereum.ContractCaller, cacheSize int) (*RootChain, error) {
	rc := &RootChain{
		contract: newContract(address, parsedRootChainABI, caller),
	}

	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("unable to create header block cache, %w", err)
		}
		rc.headers = cache
	}

	return rc, nil
}

func (r *RootChain) CurrentHeaderBlock(ctx context.Context) (uint64, error) {
	return r.contract.callUint64(ctx, "currentHeaderBlock")
}

func (r *RootChain) LastChildBlock(ctx context.Context) (uint64, error) {
	return r.contract.callUint64(ctx, "getLastChildBlock")
}

// HeaderBlock fetches the checkpoint with the given id. Submitted checkpoints
// are immutable so found ones are cached.
func (r *RootChain) HeaderBlock(ctx context.Context, id uint64) (*HeaderBlock, error) {
	if r.headers != nil {
		if v, ok := r.headers.Get(id); ok {
			return v.(*HeaderBlock), nil
		}
	}

	values, err := r.contract.call(ctx, "headerBlocks", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	if len(values) != 5 {
		return nil, fmt.Errorf("unexpected headerBlocks result length %d", len(values))
	}

	root, ok1 := values[0].([32]byte)
	start, ok2 := values[1].(*big.Int)
	end, ok3 := values[2].(*big.Int)
	createdAt, ok4 := values[3].(*big.Int)
	proposer, ok5 := values[4].(common.Address)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil, fmt.Errorf("unexpected headerBlocks result types")
	}

	if createdAt.Sign() == 0 {
		return nil, fmt.Errorf("header block %d: %w", id, ErrHeaderBlockNotFound)
	}

	hb := &HeaderBlock{
		Root:      common.Hash(root),
		Start:     start.Uint64(),
		End:       end.Uint64(),
		CreatedAt: createdAt.Uint64(),
		Proposer:  proposer,
	}

	if r.headers != nil {
		r.headers.Add(id, hb)
	}
	return hb, nil
}

// FindHeaderBlockNumber binary searches the submitted checkpoints for the one
// covering childBlock and returns its header block id.
func (r *RootChain) FindHeaderBlockNumber(ctx context.Context, childBlock uint64) (uint64, error) {
	current, err := r.CurrentHeaderBlock(ctx)
	if err != nil {
		return 0, err
	}

	start, end := uint64(1), current/CheckpointIDInterval
	for start <= end {
		mid := start + (end-start)/2

		hb, err := r.HeaderBlock(ctx, mid*CheckpointIDInterval)
		if err != nil {
			return 0, err
		}

		switch {
		case hb.Contains(childBlock):
			return mid * CheckpointIDInterval, nil
		case hb.Start > childBlock:
			if mid == 1 {
				return 0, fmt.Errorf("child block %d: %w", childBlock, ErrNotCheckpointed)
			}
			end = mid - 1
		default:
			start = mid + 1
		}
	}

	return 0, fmt.Errorf("child block %d: %w", childBlock, ErrNotCheckpointed)
}
