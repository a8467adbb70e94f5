// Package router implements the graceful degradation router: given a
// possibly incomplete measurement record, it selects the best calculable
// precision tier and computes through it. Tiers are independent strategy
// values composed into an ordered chain; the router walks the chain,
// records a downgrade reason for every tier it skips, and never guesses
// missing values. As long as weight, height and age are present some
// tier succeeds; only their absence produces an error-level result,
// which is distinguishable from a low-confidence success.
package router
