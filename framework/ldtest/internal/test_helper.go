// Package internal contains test helpers for ldtest.
package internal

// RunAction is used only in unit tests, but exported because it has to be in a separate package
// so that its frames are not filtered out as ldtest code.
func RunAction(action func()) {
	action()
}
