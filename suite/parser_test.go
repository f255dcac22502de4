package suite

import (
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONOrYAML(t *testing.T) {
	var fromJSON, fromYAML ldvalue.Value
	require.NoError(t, ParseJSONOrYAML([]byte(`{"a": [1, "b"], "c": {"d": true}}`), &fromJSON))
	require.NoError(t, ParseJSONOrYAML([]byte("a: [1, b]\nc:\n  d: true\n"), &fromYAML))
	assert.True(t, fromJSON.Equal(fromYAML))
}

func TestParseJSONOrYAMLRejectsNonStringKeys(t *testing.T) {
	var v ldvalue.Value
	assert.Error(t, ParseJSONOrYAML([]byte("1: x\n"), &v))
}

func TestIsStructuredFixture(t *testing.T) {
	for _, p := range []string{"a.jsonld", "a.json", "a.yaml", "a.YML"} {
		assert.True(t, IsStructuredFixture(p), p)
	}
	for _, p := range []string{"a.nq", "a.html", "a"} {
		assert.False(t, IsStructuredFixture(p), p)
	}
}

func TestReadJSONReportsFileName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.jsonld", "{")
	_, err := ReadJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.jsonld")
}
