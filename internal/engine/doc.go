// Package engine assembles the assessment pipeline: input validation,
// graceful tier routing, and the post-hoc sanity audit, executed in
// sequence over an accumulating model.Assessment. Each stage is a Step;
// the pipeline walks them in order with consistent logging and
// cancellation checks.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It keeps the "degrade gracefully, keep going" behavior in one place
//
// The pipeline supports both individual assessments and batch processing
// with concurrency control using errgroup. Batching is safe because every
// calculator is a pure function over immutable inputs.
package engine
