package suite

import (
	"path/filepath"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// FixtureStore locates test suite files on the local filesystem. Root is the directory that
// mirrors the remote location of the suite.
type FixtureStore struct {
	Root string
}

// Path converts a slash-separated path relative to the suite root into an OS path.
func (s FixtureStore) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// PathForURL maps a URL under remoteBaseURL to the local copy of that document. It returns
// false if the URL is not under remoteBaseURL.
func (s FixtureStore) PathForURL(remoteBaseURL, url string) (string, bool) {
	base := strings.TrimSuffix(remoteBaseURL, "/")
	if base == "" || !strings.HasPrefix(url, base) {
		return "", false
	}
	rest := strings.TrimPrefix(url, base)
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return "", false
	}
	rest = strings.TrimPrefix(rest, "/")
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	return s.Path(rest), true
}

// Read loads a fixture. Structured fixtures are parsed; anything else is returned as a string.
func (s FixtureStore) Read(rel string) (ldvalue.Value, error) {
	path := s.Path(rel)
	if IsStructuredFixture(path) {
		return ReadJSON(path)
	}
	text, err := ReadText(path)
	if err != nil {
		return ldvalue.Null(), err
	}
	return ldvalue.String(text), nil
}
