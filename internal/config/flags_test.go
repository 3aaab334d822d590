// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddressSet(t *testing.T) {
	t.Run("parses host and port", func(t *testing.T) {
		var addr NetAddress
		require.NoError(t, addr.Set("localhost:8080"))
		assert.Equal(t, "localhost", addr.Host)
		assert.Equal(t, 8080, addr.Port)
		assert.Equal(t, "localhost:8080", addr.String())
	})

	t.Run("accepts IP hosts", func(t *testing.T) {
		var addr NetAddress
		require.NoError(t, addr.Set("0.0.0.0:9090"))
		assert.Equal(t, "0.0.0.0:9090", addr.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		var addr NetAddress
		assert.Error(t, addr.Set("no-port"))
		assert.Error(t, addr.Set("localhost:notaport"))
		assert.Error(t, addr.Set("localhost:0"))
		assert.Error(t, addr.Set("not an ip:8080"))
	})

	t.Run("zero value renders empty", func(t *testing.T) {
		var addr NetAddress
		assert.Empty(t, addr.String())
	})
}

func TestSplitCollections(t *testing.T) {
	assert.Nil(t, splitCollections(""))
	assert.Equal(t, []string{"posts"}, splitCollections("posts"))
	assert.Equal(t, []string{"posts", "users"}, splitCollections("posts, users"))
	assert.Equal(t, []string{"posts"}, splitCollections("posts,,"))
}
