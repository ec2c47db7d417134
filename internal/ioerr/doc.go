// Package ioerr classifies failures at the network boundaries of sitefinder.
// Every fetch, search and probe call that leaves the process reports its
// failure as an [*Error] tagged with a [Kind], so upper layers can treat "no
// data" uniformly and still log why a source went quiet.
//
// Use [New] to tag an error explicitly and [Classify] to infer the kind of a
// transport error returned by net/http.
package ioerr
