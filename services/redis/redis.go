package redis

import (
	redis_models "Farol/models/redis"
	redis_utils "Farol/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// Presence entries expire on their own if a process dies without cleanup.
const presenceTTL = 24 * time.Hour

// SavePlayerPresence stores a player's presence record.
// Key format: "presence:{username}"
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.Username)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, presenceTTL).Err()
}

// GetPlayerPresence retrieves a player's presence record.
// Key format: "presence:{username}"
func (rc *RedisClient) GetPlayerPresence(username string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPresenceKey(username)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			// No presence record: the player is offline
			return nil, nil
		}
		return nil, fmt.Errorf("error getting presence data: %v", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// DeletePlayerPresence removes a player's presence record on disconnect.
func (rc *RedisClient) DeletePlayerPresence(username string) error {
	key := redis_utils.FormatPresenceKey(username)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting presence data: %v", err)
	}
	return nil
}

// MarkPlayerInGame updates a player's presence to 'playing' in the given
// game room (empty gameID switches back to plain 'online').
func (rc *RedisClient) MarkPlayerInGame(username, gameID, socketID string) error {
	status := redis_models.StatusPlaying
	if gameID == "" {
		status = redis_models.StatusOnline
	}
	presence := &redis_models.PlayerPresence{
		Username: username,
		Status:   status,
		GameID:   gameID,
		SocketID: socketID,
		LastPing: time.Now().Unix(),
	}
	return rc.SavePlayerPresence(presence)
}
