// Package density implements the two-component (fat / fat-free) body
// composition estimate. Five skinfold-to-density regression variants are
// supported, each with sex-specific coefficients and its own required
// skinfold set. Density converts to fat percentage through the Siri
// equation, and the computed values are guarded: implausible densities
// invalidate the result, and fat percentages outside the survival band
// are flagged without blocking.
package density
