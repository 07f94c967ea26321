package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "quizforge"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// GeneratedQuestionsKey identifies one generation request by a digest of its content.
func GeneratedQuestionsKey(content, complexity string, count int) string {
	sum := sha256.Sum256([]byte(content))
	return GenerateCacheKey("generation", "questions", hex.EncodeToString(sum[:]), complexity, strconv.Itoa(count))
}
