package scenario

import (
	"math/rand"
	"regexp"
	"strconv"
)

var digitsRe = regexp.MustCompile(`\d+`)

// queryNumber extracts the first integer mentioned in a free-text query. When
// the query contains no number, one of the candidate values is picked at
// random; that is the only nondeterminism in the fallback parameter builders.
func queryNumber(query string, candidates []int) int {
	if match := digitsRe.FindString(query); match != "" {
		if n, err := strconv.Atoi(match); err == nil {
			return n
		}
	}
	return candidates[rand.Intn(len(candidates))]
}

// subMap fetches a nested JSON object, degrading to an empty map so field
// lookups coerce to their zero defaults.
func subMap(raw map[string]interface{}, key string) map[string]interface{} {
	if m, ok := raw[key].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}
