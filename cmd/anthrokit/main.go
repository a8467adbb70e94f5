// Package main provides the entry point for the anthrokit CLI.
//
// anthrokit estimates body composition from anthropometric measurements.
// It fractionates body mass into five components using the Phantom
// stratagem, falls back through skinfold-density and BMI methods when
// measurements are missing, and audits every result before reporting it.
//
// Usage:
//
//	anthrokit assess measurement.yaml
//	anthrokit tem replicates.yaml
//
// See --help for all available options.
package main

// main is the entry point for anthrokit.
func main() {
	Execute()
}
