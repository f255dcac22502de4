// Package ldtest contains a test runner framework that is similar to Go's testing package,
// but is run as regular Go application code rather than Go tests. It adds richer capabilities
// for filtering, cancellation, logging, and result reporting: every test scope's lifecycle is
// delivered to TestLogger listeners, which is how console output, JUnit files and compliance
// reports are produced.
package ldtest
