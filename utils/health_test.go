package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestStartHealthMonitorTakesImmediateSnapshot(t *testing.T) {
	StartHealthMonitor(nil, nil)

	status := GetHealthStatus()
	assert.True(t, status.Store, "nil mongo client means the in-memory store, always healthy")
	assert.False(t, status.Redis)
	assert.False(t, status.CheckedAt.IsZero(), "the first snapshot must not wait for a tick")
}

func TestCheckHealthReportsReachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	checkHealth(context.Background(), client, nil)

	status := GetHealthStatus()
	assert.True(t, status.Redis)
	assert.True(t, status.Store)
}
