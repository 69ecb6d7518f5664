// Package trace records timing spans for the lowering pipeline.
//
// Spans are emitted at three granularities: the driver run as a whole,
// each input file, and each pass (parse, lower, print) inside a file.
// The level decides which of them reach the output.
//
//	tsxlower --trace=- --trace-level=detail 'src/**/*.tsx'
//
// Tracers travel through the pipeline inside a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
