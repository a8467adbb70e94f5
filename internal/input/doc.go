// Package input loads measurement records and replicate reading sessions
// from YAML files. YAML is the collection format because absent fields
// stay absent: a site that was not measured decodes to a nil pointer,
// never to a zero, which the validation and routing rules depend on.
package input
