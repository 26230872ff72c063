// Package naming generates human-friendly identifiers and normalizes
// GPU shorthand into patterns matching provider machine names.
package naming

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var adjectives = []string{
	"swift", "brave", "calm", "eager", "gentle",
	"cosmic", "golden", "lunar", "zesty", "noble",
}

var nouns = []string{
	"hawk", "lion", "eagle", "fox", "wolf",
	"shark", "raven", "matrix", "comet", "orbit",
}

// HUID derives a stable human-readable ID ("swift-hawk-3f") from an
// opaque identifier. The same input always maps to the same HUID.
func HUID(id string) string {
	if id == "" {
		return "invalid"
	}
	sum := md5.Sum([]byte(id))
	digest := hex.EncodeToString(sum[:])

	adjIdx := hexVal(digest[:4]) % len(adjectives)
	nounIdx := hexVal(digest[4:8]) % len(nouns)
	return fmt.Sprintf("%s-%s-%s", adjectives[adjIdx], nouns[nounIdx], digest[len(digest)-2:])
}

func hexVal(s string) int {
	var n int
	for _, c := range s {
		n *= 16
		switch {
		case c >= '0' && c <= '9':
			n += int(c - '0')
		case c >= 'a' && c <= 'f':
			n += int(c-'a') + 10
		}
	}
	return n
}

var rtxPattern = regexp.MustCompile(`^RTX(\d+)$`)

// ExpandGPUShorthand turns a short GPU name into a substring pattern
// matching full provider machine names. "A100" already matches
// "NVIDIA A100-SXM4-80GB" via substring search, but "RTX4090" needs a
// space inserted to match "NVIDIA GeForce RTX 4090".
func ExpandGPUShorthand(gpu string) string {
	// Already a full name or explicit pattern
	if len(gpu) > 10 || strings.Contains(gpu, " ") {
		return gpu
	}
	upper := strings.ToUpper(gpu)
	if m := rtxPattern.FindStringSubmatch(upper); m != nil {
		return "RTX " + m[1]
	}
	return gpu
}
