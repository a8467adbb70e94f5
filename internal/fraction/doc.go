// Package fraction implements the Kerr five-component fractionation of
// body mass into skin, adipose, muscle, bone and residual tissue using
// the Phantom stratagem: every linear measurement is height-adjusted to
// the Phantom stature, turned into a Z-score against the Phantom
// reference population, and the per-component mean Z-score is converted
// back into kilograms at the subject's actual stature. The five raw
// masses are then rescaled by a single factor so they sum exactly to the
// subject's measured weight; a pre-scaling deviation above 5% raises a
// model-deviation warning but never blocks the balanced output.
//
// Z-scores are null-safe: a non-positive height, value or reference SD
// excludes the site from the component mean instead of producing NaN or
// infinity. A component with no usable site decays to the Phantom
// reference mass (mean Z-score of zero).
package fraction
