// Package idgen issues process-wide monotonically increasing identifiers for
// patient records. Arrival timestamps come from a coarse clock, so identifiers
// double as the ordering tiebreak of last resort.
package idgen
