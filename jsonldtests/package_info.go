// Package jsonldtests contains the conformance test driver: it runs each classified test from
// a loaded suite against a JSON-LD processor, one ldtest scope per test.
package jsonldtests
