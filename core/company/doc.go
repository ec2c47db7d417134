// Package company holds the company identity a resolution run starts from
// and the profile derived from it once: the normalized name, its tokens, the
// brand core, the inferred city and the sector keyword set.
package company
