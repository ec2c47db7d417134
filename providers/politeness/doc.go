// Package politeness centralises the pacing of externally visible network
// calls. Every call site that reaches the network (a page fetch miss, each
// search backend request) waits on one shared Policy; cache hits never do.
package politeness
