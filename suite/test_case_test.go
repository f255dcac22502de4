package suite

import (
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPropertyParsesStructuredFixtures(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/compact-manifest.jsonld#t0001")

	context, err := tc.ReadProperty(PropertyContext)
	require.NoError(t, err)
	require.True(t, context.IsDefined())
	assert.JSONEq(t, `{"@context": {"p": "http://example.org/p"}}`, context.Value().JSONString())
}

func TestReadPropertyReturnsOtherFixturesAsText(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/rdf-manifest.yaml#t0001")

	expect, err := tc.ReadProperty(PropertyExpect)
	require.NoError(t, err)
	assert.Equal(t, ldvalue.String("<http://example.org/a> <http://example.org/p> \"v\" .\n"), expect.Value())
}

func TestReadPropertyUndeclared(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/expand-manifest.jsonld#t0001")

	frame, err := tc.ReadProperty(PropertyFrame)
	require.NoError(t, err)
	assert.False(t, frame.IsDefined())
}

func TestReadPropertyUnreadable(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/expand-manifest.jsonld#te001")

	_, err := tc.ReadProperty(PropertyInput)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, PropertyInput, le.Property)
}

func TestCreateOptionsDropsTransportOptions(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/remote-doc-manifest.jsonld#t0003")

	options, err := tc.CreateOptions()
	require.NoError(t, err)
	assert.Len(t, options.Values, 0)
	assert.NotNil(t, options.DocumentLoader)
	assert.Equal(t, "", options.Format)
	assert.False(t, options.ExpandContext.IsDefined())
}

func TestCreateOptionsResolvesExpandContext(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/expand-manifest.jsonld#t0002")

	options, err := tc.CreateOptions()
	require.NoError(t, err)
	assert.Equal(t, map[string]ldvalue.Value{"processingMode": ldvalue.String("json-ld-1.0")}, options.Values)
	require.True(t, options.ExpandContext.IsDefined())
	assert.JSONEq(t, `{"@context": {"p": "http://example.org/p"}}`, options.ExpandContext.Value().JSONString())
}

func TestCreateOptionsOverridesWin(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/expand-manifest.jsonld#t0002")
	loader := DocumentLoaderFunc(func(string) (RemoteDocument, error) { return RemoteDocument{}, nil })

	options, err := tc.CreateOptions(
		WithFormat(FormatNQuads),
		WithOption("processingMode", ldvalue.String("json-ld-1.1")),
		WithOption("base", ldvalue.String("http://example.org/")),
		WithExpandContext(ldvalue.ObjectBuild().Set("@vocab", ldvalue.String("http://example.org/")).Build()),
		WithDocumentLoader(loader),
	)
	require.NoError(t, err)
	assert.Equal(t, FormatNQuads, options.Format)
	assert.Equal(t, ldvalue.String("json-ld-1.1"), options.Get("processingMode"))
	assert.Equal(t, ldvalue.String("http://example.org/"), options.Get("base"))
	assert.Equal(t, ldvalue.Null(), options.Get("nonexistent"))
	assert.Equal(t, `{"@vocab":"http://example.org/"}`, options.ExpandContext.Value().JSONString())
	_, isSimulator := options.DocumentLoader.(documentLoaderSimulator)
	assert.False(t, isSimulator)
}

func TestCreateOptionsExpandContextFixtureMissing(t *testing.T) {
	tc := findTest(t, loadTestSuite(t), "http://json-ld.org/test-suite/tests/expand-manifest.jsonld#t0001")

	_, err := tc.CreateOptions(WithOption(OptionExpandContext, ldvalue.String("nonexistent.jsonld")))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, OptionExpandContext, le.Property)
}
