// Package social finds a company's social-media profile when no website
// candidate survives.
//
// A battery of platform-scoped and free-text queries is searched and the
// first results that land on a social host are kept. Each link is reduced to
// its platform and handle, then scored by the platform weight plus a reward
// for how closely the handle matches a brand-core variant. The best link is
// accepted only when its score reaches [MinAcceptScore].
package social
