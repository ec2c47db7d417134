// Package domain extracts hosts from URLs and reduces them to a registrable
// root and public suffix, so candidate domains and e-mail domains can be
// compared fairly. It also recognises the social-network hosts that the
// resolver treats specially.
package domain
