// Package audit runs post-hoc plausibility checks on any composition
// result, independent of which tier produced it: mass conservation,
// component positivity, fat percentage bands, bone share, muscle-to-bone
// ratio, and skinfold sum. Each triggered check subtracts a fixed
// penalty from a starting confidence of 100 (floored at 0); the result
// stays valid as long as no blocking finding was raised.
package audit
