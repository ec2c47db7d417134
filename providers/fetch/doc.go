// Package fetch is the HTTP boundary for page retrieval.
//
// A [Fetcher] reads through a [cache.Store]: a cached page is returned
// without any network access, whatever its age. A miss waits on the shared
// politeness policy, issues a GET with a rotating User-Agent through a
// retrying transport, follows up to ten redirects, caps the body at
// [MaxBodySize] and decodes it to UTF-8 from the declared or sniffed
// charset. Pages that a non-social URL redirected onto a social network are
// prefixed with [SocialRedirectMarker] before they are cached, so the flag
// survives later cache hits.
//
// Failures are returned as *ioerr.Error values carrying a Kind. Callers
// treat any error as "no data from this page".
//
// Example:
//
//	f := fetch.New(inmemory.New(), fetch.WithPolicy(politeness.Default()))
//	page, err := f.Fetch(ctx, "https://acme.com.tr")
//	if err != nil {
//	    // no data
//	}
package fetch
