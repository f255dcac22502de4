// Package earl accumulates test outcomes into an Evaluation and Report Language (EARL) report,
// serialized as JSON-LD, which is the format used to publish JSON-LD conformance results.
package earl
