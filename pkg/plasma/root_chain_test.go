package plasma

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rootChainAddr = common.HexToAddress("0x0000000000000000000000000000000000000001")

func newTestRootChain(t *testing.T, cacheSize int) (*RootChain, *fakeBackend) {
	t.Helper()

	backend := newFakeBackend(5)
	backend.deployRootChain(rootChainAddr, 4095,
		checkpoint{start: 0, end: 255, createdAt: 1000},
		checkpoint{start: 256, end: 511, createdAt: 2000},
		checkpoint{start: 512, end: 1023, createdAt: 3000},
		checkpoint{start: 1024, end: 2047, createdAt: 4000},
		checkpoint{start: 2048, end: 4095, createdAt: 5000},
	)

	rc, err := NewRootChain(rootChainAddr, backend, cacheSize)
	require.NoError(t, err)
	return rc, backend
}

func TestFindHeaderBlockNumber(t *testing.T) {
	rc, _ := newTestRootChain(t, 0)
	ctx := context.Background()

	cases := map[uint64]uint64{
		0:    10000,
		255:  10000,
		300:  20000,
		512:  30000,
		2047: 40000,
		2048: 50000,
		4095: 50000,
	}
	for child, want := range cases {
		got, err := rc.FindHeaderBlockNumber(ctx, child)
		require.NoError(t, err, "child block %d", child)
		assert.Equal(t, want, got, "child block %d", child)
	}
}

func TestFindHeaderBlockNumberNotCheckpointed(t *testing.T) {
	rc, _ := newTestRootChain(t, 0)

	_, err := rc.FindHeaderBlockNumber(context.Background(), 5000)
	assert.ErrorIs(t, err, ErrNotCheckpointed)
}

func TestFindHeaderBlockNumberNoCheckpoints(t *testing.T) {
	backend := newFakeBackend(5)
	backend.deployRootChain(rootChainAddr, 0)

	rc, err := NewRootChain(rootChainAddr, backend, 0)
	require.NoError(t, err)

	_, err = rc.FindHeaderBlockNumber(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotCheckpointed)
}

func TestHeaderBlock(t *testing.T) {
	rc, backend := newTestRootChain(t, 16)
	ctx := context.Background()

	hb, err := rc.HeaderBlock(ctx, 20000)
	require.NoError(t, err)
	assert.Equal(t, uint64(256), hb.Start)
	assert.Equal(t, uint64(511), hb.End)
	assert.Equal(t, uint64(2000), hb.CreatedAt)
	assert.Equal(t, common.Hash{2}, hb.Root)

	_, err = rc.HeaderBlock(ctx, 20000)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.callCount("headerBlocks"))

	_, err = rc.HeaderBlock(ctx, 990000)
	assert.ErrorIs(t, err, ErrHeaderBlockNotFound)
}

func TestLastChildBlock(t *testing.T) {
	rc, _ := newTestRootChain(t, 0)

	last, err := rc.LastChildBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4095), last)
}

func TestContractCallNoCode(t *testing.T) {
	rc, err := NewRootChain(common.HexToAddress("0xdead"), newFakeBackend(5), 0)
	require.NoError(t, err)

	_, err = rc.CurrentHeaderBlock(context.Background())
	assert.ErrorIs(t, err, ErrEmptyResult)
}
