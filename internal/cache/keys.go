package cache

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	GlobalKeyPrefix = "civicquiz"

	ServiceContent = "content"
	ObjectParsed   = "parsed"
)

// GenerateCacheKey joins prefix, service, object type and identifier with
// ":". Extra params are joined by "_" and appended as one more segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return baseKey + ":" + strings.Join(paramsKey, "_")
	}
	return baseKey
}

// ContentHash is the hex xxhash64 of raw model output.
func ContentHash(raw string) string {
	return strconv.FormatUint(xxhash.Sum64String(raw), 16)
}

// ParsedContentKey addresses the cached parse result of raw model output.
func ParsedContentKey(raw string) string {
	return GenerateCacheKey(ServiceContent, ObjectParsed, ContentHash(raw))
}
