package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
)

// Query parameters stripped during canonicalization. Tracking
// decorations must not produce distinct dedup keys.
var trackingParamPattern = regexp.MustCompile(`^(utm_[a-z0-9_]+|fbclid|gclid|mc_cid|mc_eid)$`)

// CanonicalKey derives the dedup key for a link: a sha256 hex digest
// of its normalized form. Deterministic and total; unparseable links
// hash their trimmed raw form.
func CanonicalKey(link string) string {
	hash := sha256.Sum256([]byte(NormalizeURL(link)))
	return hex.EncodeToString(hash[:])
}

// NormalizeURL rewrites a link into its canonical form: scheme and
// host lowercased, tracking query parameters removed (other parameters
// keep their original order), a single trailing slash stripped.
func NormalizeURL(link string) string {
	trimmed := strings.TrimSpace(link)

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return trimmed
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = stripTrackingParams(u.RawQuery)

	return u.String()
}

// stripTrackingParams filters the raw query string directly rather
// than through url.Values, which would reorder the surviving
// parameters.
func stripTrackingParams(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if idx := strings.Index(pair, "="); idx >= 0 {
			key = pair[:idx]
		}
		if trackingParamPattern.MatchString(strings.ToLower(key)) {
			continue
		}
		kept = append(kept, pair)
	}

	return strings.Join(kept, "&")
}
