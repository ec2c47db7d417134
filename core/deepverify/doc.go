// Package deepverify corroborates a candidate site by fetching a fixed list
// of home-relative subpages and summing their signal counts.
//
// The crawl never follows links. Subpages that fail to fetch are skipped and
// parked subpages count zero. The landing page itself is not part of the
// list; callers add its own count to the sum.
package deepverify
