package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "stonegame"

// resultsKey returns the Redis key for the finished-match list
func resultsKey() string {
	return fmt.Sprintf("%s:results", keyPrefix)
}
