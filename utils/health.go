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
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	Consumer  bool      `json:"consumer"` // availability-sync consumer connected to the broker
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	consumerUp    bool
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// SetConsumerUp records whether the booking-event consumer currently holds a
// broker connection. Called from the consumer's connect/reconnect loop.
func SetConsumerUp(up bool) {
	mu.Lock()
	consumerUp = up
	mu.Unlock()
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			redisHealthy := redisClient.Ping(ctx).Err() == nil
			mongoHealthy := mongoClient.Ping(ctx, nil) == nil

			mu.Lock()
			currentHealth = HealthStatus{
				Mongo:     mongoHealthy,
				Redis:     redisHealthy,
				Consumer:  consumerUp,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
