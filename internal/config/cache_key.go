package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RoundPayloadKey returns the cache key for a round's question payload
func (r *CacheKeyStruct) RoundPayloadKey(roundID int64) string {
	return fmt.Sprintf("round:%d:payload", roundID)
}

// RoundAnswerKeyKey returns the cache key for a round's answer key
func (r *CacheKeyStruct) RoundAnswerKeyKey(roundID int64) string {
	return fmt.Sprintf("round:%d:answer_key", roundID)
}

// RoundRankingKey returns the cache key for a round's ranking board
func (r *CacheKeyStruct) RoundRankingKey(roundID int64) string {
	return fmt.Sprintf("round:%d:ranking", roundID)
}

// UserActiveExamKey returns the cache key for a user's in-progress exam
func (r *CacheKeyStruct) UserActiveExamKey(userID int64) string {
	return fmt.Sprintf("user:%d:active_exam", userID)
}

// UserStatsKey returns the cache key for a user's aggregate statistics
func (r *CacheKeyStruct) UserStatsKey(userID int64) string {
	return fmt.Sprintf("user:%d:stats", userID)
}

// AchievementUnlockChannel returns the Redis PubSub channel name for a
// user's achievement unlock events
func (r *CacheKeyStruct) AchievementUnlockChannel(userID int64) string {
	return fmt.Sprintf("user:%d:achievement_unlocks", userID)
}

var CacheKey = NewCacheKeyStruct()
