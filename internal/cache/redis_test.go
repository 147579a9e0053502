package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	t.Run("connects to a reachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client := InitRedis(mr.Addr())
		require.NotNil(t, client)
		t.Cleanup(func() { _ = client.Close() })
	})

	t.Run("nil on unreachable address", func(t *testing.T) {
		assert.Nil(t, InitRedis("127.0.0.1:1"))
	})

	t.Run("nil on malformed url", func(t *testing.T) {
		assert.Nil(t, InitRedis("redis://%zz"))
	})
}
