package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. The first check runs synchronously so /health never serves a zero
// snapshot. mongoClient may be nil when the in-memory store is configured;
// the store is then reported healthy unconditionally.
func StartHealthMonitor(cacheClient *redis.Client, mongoClient *mongo.Client) {
	checkHealth(context.Background(), cacheClient, mongoClient)

	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			checkHealth(context.Background(), cacheClient, mongoClient)
		}
	}()
}

func checkHealth(ctx context.Context, cacheClient *redis.Client, mongoClient *mongo.Client) {
	redisHealthy := cacheClient != nil && cacheClient.Ping(ctx).Err() == nil

	storeHealthy := true
	if mongoClient != nil {
		storeHealthy = mongoClient.Ping(ctx, nil) == nil
	}

	healthMu.Lock()
	currentHealth = HealthStatus{
		Store:     storeHealthy,
		Redis:     redisHealthy,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}
