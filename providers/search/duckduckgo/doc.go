// Package duckduckgo is a key-less search backend that scrapes the DuckDuckGo
// HTML endpoint, falling back to the lite endpoint when the HTML page yields
// fewer results than requested.
//
// Result links are DuckDuckGo redirects of the form /l/?uddg=<target>; the
// target is unwrapped and only absolute http(s) links to hosts outside
// duckduckgo.com are kept.
package duckduckgo
