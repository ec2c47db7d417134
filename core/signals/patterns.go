package signals

import "regexp"

// Patterns run on normalized text, so they only see lower-case letters,
// digits, '_', '@', '.' and single spaces.

// mersisPattern matches the 16-digit central registry number.
var mersisPattern = regexp.MustCompile(`\b\d{16}\b`)

// taxNumberPattern matches a 10-digit tax number.
var taxNumberPattern = regexp.MustCompile(`\b\d{10}\b`)

// registryPattern matches a labelled trade registry number.
var registryPattern = regexp.MustCompile(`(?:ticaret )?sicil\s*no[:.\s]*([a-z0-9\-/]+)`)

// phonePatterns match local numbers ("0 212 555 12 34") and numbers whose
// "+90" prefix was reduced to "90" by normalization.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b0\s?\d{3}\s?\d{3}\s?\d{2}\s?\d{2}\b`),
	regexp.MustCompile(`\+\d{2}\s?\d{3}\s?\d{3}\s?\d{2}\s?\d{2}`),
	regexp.MustCompile(`\b90\s?\d{3}\s?\d{3}\s?\d{2}\s?\d{2}\b`),
}

// emailPattern captures the domain part of an e-mail address.
var emailPattern = regexp.MustCompile(`[a-z0-9._%+\-]+@([a-z0-9.\-]+\.[a-z]{2,})`)

// parkingPatterns are placeholder-page phrases in normalized form.
var parkingPatterns = []string{
	"this domain is for sale",
	"satilik domain",
	"yakinda burada",
	"coming soon",
	"nginx default page",
	"welcome to nginx",
	"apache2 ubuntu default",
	"cpanel",
	"plesk",
	"under construction",
	"site yapim asamasinda",
}

// directoryListingPattern matches a raw web-server directory listing title.
var directoryListingPattern = regexp.MustCompile(`(?i)<title>\s*index of /`)
