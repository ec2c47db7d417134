package social

import (
	"net/url"
	"strings"

	"github.com/leofalp/sitefinder/core/domain"
)

// Platform identifies a social network.
type Platform string

// Platforms with a handle extraction rule.
const (
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	LinkedIn  Platform = "linkedin"
	YouTube   Platform = "youtube"
	TikTok    Platform = "tiktok"
	Twitter   Platform = "twitter"
	Other     Platform = "other"
)

// platformHosts maps social hosts to their platform. X and Twitter are one
// platform.
var platformHosts = map[string]Platform{
	"instagram.com": Instagram,
	"facebook.com":  Facebook,
	"linkedin.com":  LinkedIn,
	"youtube.com":   YouTube,
	"tiktok.com":    TikTok,
	"twitter.com":   Twitter,
	"x.com":         Twitter,
}

// PlatformWeights is the base score of each platform, reflecting how often
// Turkish companies keep their primary presence there.
var PlatformWeights = map[Platform]float64{
	Instagram: 10,
	Facebook:  8,
	YouTube:   6,
	LinkedIn:  5,
	TikTok:    4,
	Twitter:   3,
}

// nonProfileSegments are leading path segments that name a post, listing or
// feature page rather than an account.
var nonProfileSegments = map[string]struct{}{
	"p": {}, "reel": {}, "reels": {}, "tv": {}, "stories": {}, "explore": {},
	"hashtag": {}, "share": {}, "watch": {}, "search": {}, "i": {}, "intent": {},
	"profile.php": {}, "pages": {}, "groups": {}, "events": {}, "tag": {}, "discover": {},
}

// PlatformOf returns the platform of rawURL, or Other.
func PlatformOf(rawURL string) Platform {
	if p, ok := platformHosts[domain.SocialHost(domain.Host(rawURL))]; ok {
		return p
	}
	return Other
}

// Handle returns the account handle encoded in rawURL's path, or "".
func Handle(rawURL string) string {
	parts := pathParts(rawURL)
	first := func() string {
		if len(parts) == 0 {
			return ""
		}
		if _, skip := nonProfileSegments[strings.ToLower(parts[0])]; skip {
			return ""
		}
		return parts[0]
	}

	switch PlatformOf(rawURL) {
	case Instagram, Facebook, Twitter, TikTok:
		return first()
	case LinkedIn:
		if len(parts) >= 2 && (parts[0] == "company" || parts[0] == "in" || parts[0] == "school") {
			return parts[1]
		}
		return first()
	case YouTube:
		if h := first(); strings.HasPrefix(h, "@") {
			return h[1:]
		}
		if len(parts) >= 2 && (parts[0] == "c" || parts[0] == "user") {
			return parts[1]
		}
		return ""
	default:
		return ""
	}
}

func pathParts(rawURL string) []string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
