// Package scoring implements the two additive scoring passes applied to a
// candidate URL.
//
// The quick score reads only the URL: suffix preference, a clean or messy
// host, banned legal-entity fragments in the registrable root, directory and
// news keywords, and how closely the root resembles the brand core.
//
// The content score reads one fetched page. Each text field that carries the
// normalized company name contributes its own weight, then sector, city,
// e-mail domain, phone, legal identifier, DNS and certificate checks add
// theirs. A page that redirected onto a social network is penalized. The
// signal count computed alongside is the gate the resolver trusts; a parked
// page always counts zero.
package scoring
