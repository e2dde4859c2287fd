package exitcache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, key("0xABCDEF"), key("0xabcdef"))
	assert.Equal(t, "pos-exit-checker:exited:0xabcdef", key("0xAbCdEf"))
}

func TestNoopRepository(t *testing.T) {
	repo := NewNoopRepository()
	ctx := context.Background()

	require.NoError(t, repo.MarkExited(ctx, "0x01"))
	exited, err := repo.IsExited(ctx, "0x01")
	require.NoError(t, err)
	assert.False(t, exited)
}

func TestRepositoryUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := NewRepository(client, time.Minute)
	ctx := context.Background()

	_, err := repo.IsExited(ctx, "0x01")
	assert.Error(t, err)
	assert.Error(t, repo.MarkExited(ctx, "0x01"))
}
