// Package framework contains the low-level test harness infrastructure that is not specific to
// JSON-LD. The base package holds shared types such as Logger and Capabilities; the runner
// itself is in ldtest, and communication with an out-of-process processor is in harness.
//
// The general model is:
//
// 1. A run is a tree of test scopes (ldtest.T), much like Go's testing.T, each accumulating
// success/failure results and debug output.
//
// 2. Every scope's lifecycle (started, error, finished, skipped) is delivered to any number of
// ldtest.TestLogger listeners, which is how console output, JUnit files and compliance reports
// are produced.
//
// 3. Optionally, the harness talks to a test service that wraps the implementation under test,
// and exposes callback endpoints that the service can use to fetch documents.
package framework
