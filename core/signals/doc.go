// Package signals turns a fetched HTML page into a normalized Bundle of the
// text fields the scoring engine inspects, and exposes the derived checks
// built on top of it: legal identifiers, phone numbers, e-mail domains,
// parking-page detection and the coarse signal count used to gate
// candidates.
//
// Extraction never fails. Malformed or partial HTML yields empty fields.
package signals
