// Package tem computes the Dahlberg Technical Error of Measurement from
// replicate readings at a measurement site and classifies measurer
// precision against instrument-category cut points. It is independent of
// composition estimation: it judges the measurer, not the subject.
package tem
