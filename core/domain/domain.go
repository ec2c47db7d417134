package domain

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// knownSuffixes are the compound suffixes checked before the public suffix
// list. The set mirrors the suffixes Turkish companies actually register.
var knownSuffixes = map[string]struct{}{
	"com.tr": {}, "org.tr": {}, "net.tr": {}, "gen.tr": {}, "biz.tr": {},
	"info.tr": {}, "av.tr": {}, "dr.tr": {}, "pol.tr": {}, "bel.tr": {},
	"k12.tr": {}, "edu.tr": {}, "gov.tr": {}, "tsk.tr": {}, "bbs.tr": {},
	"name.tr": {}, "web.tr": {}, "tv.tr": {},
	"co.uk": {}, "com.br": {}, "com.au": {}, "co.jp": {}, "co.in": {},
	"co.za": {}, "co.id": {}, "com.mx": {}, "com.ar": {}, "com.es": {},
}

// SocialHosts are the host fragments that identify a social network.
var SocialHosts = []string{
	"linkedin.com", "instagram.com", "facebook.com", "twitter.com",
	"x.com", "youtube.com", "t.me", "tiktok.com",
}

// Host returns the lower-cased host of rawURL without port, or "" when the
// URL cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// RegistrableParts splits a host into its registrable second-level label and
// its public suffix. The known compound suffixes win first (longest match),
// then ICANN suffixes from the public suffix list. When neither applies the
// last two labels are used.
func RegistrableParts(host string) (root, suffix string) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host, ""
	}

	for i := 0; i < len(labels)-1; i++ {
		candidate := strings.Join(labels[i:], ".")
		if _, ok := knownSuffixes[candidate]; ok {
			if i == 0 {
				return labels[0], candidate
			}
			return labels[i-1], candidate
		}
	}

	if ps, icann := publicsuffix.PublicSuffix(host); icann && ps != host {
		rest := strings.TrimSuffix(host, "."+ps)
		parts := strings.Split(rest, ".")
		return parts[len(parts)-1], ps
	}

	return labels[len(labels)-2], labels[len(labels)-1]
}

// Root returns the registrable second-level label of host.
func Root(host string) string {
	root, _ := RegistrableParts(host)
	return root
}

// SameRoot reports whether two hosts share a non-empty registrable root.
func SameRoot(a, b string) bool {
	ra := Root(a)
	return ra != "" && ra == Root(b)
}

// IsSocial reports whether rawURL points at a social-network host.
func IsSocial(rawURL string) bool {
	return SocialHost(Host(rawURL)) != ""
}

// SocialHost returns the SocialHosts entry that host is, or is a subdomain
// of, or "" when host is not a social network.
func SocialHost(host string) string {
	for _, s := range SocialHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return s
		}
	}
	return ""
}
