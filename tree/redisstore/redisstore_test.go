package redisstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts, err := Options("redis://:secret@cache.local:6380/3")
	require.NoError(t, err)
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	opts, err = Options("redis://localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 0, opts.DB)

	_, err = Options("http://localhost")
	assert.Error(t, err)
	_, err = Options("redis://localhost/db")
	assert.Error(t, err)
}

func TestKeyFor(t *testing.T) {
	rs := &redisStore{prefix: "iris"}
	assert.Equal(t, "iris:12", rs.keyFor("12"))
}
