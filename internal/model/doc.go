// Package model defines the core data structures used throughout anthrokit.
//
// This package contains the following main types:
//   - RawMeasurement: A subject's anthropometric record with optional fields
//   - Finding: A structured validation or audit finding with severity
//   - FractionationResult: The Kerr five-component fractionation output
//   - BodyComposition: The density-based two-component output
//   - GracefulResult: The tiered result produced by the degradation router
//   - TEMResult: Technical Error of Measurement statistics per site
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (validate, density, fraction, router, audit,
// report) need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage, and to YAML for measurement input files. Optional
// measurements are pointers: a nil pointer means "not measured", which is a
// different state from a measured zero and several validation rules depend
// on the distinction.
package model
