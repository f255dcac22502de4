package servicedef

import (
	"encoding/json"
	"testing"

	o "github.com/ldconformance/ld-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandOptionsAreWrittenAsOneObject(t *testing.T) {
	options := CommandOptions{
		DocumentLoader: "http://harness:8111/endpoints/1",
		Format:         "application/n-quads",
		ExpandContext:  o.Some(ldvalue.Parse([]byte(`{"@vocab": "http://example.org/"}`))),
		Values: map[string]ldvalue.Value{
			"processingMode": ldvalue.String("json-ld-1.1"),
			"compactArrays":  ldvalue.Bool(false),
			"format":         ldvalue.String("ignored"),
		},
	}
	data, err := json.Marshal(options)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"compactArrays": false,
		"processingMode": "json-ld-1.1",
		"documentLoader": "http://harness:8111/endpoints/1",
		"format": "application/n-quads",
		"expandContext": {"@vocab": "http://example.org/"}
	}`, string(data))

	var decoded CommandOptions
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, options.DocumentLoader, decoded.DocumentLoader)
	assert.Equal(t, options.Format, decoded.Format)
	assert.Equal(t, `{"@vocab":"http://example.org/"}`, decoded.ExpandContext.Value().JSONString())
	assert.Len(t, decoded.Values, 2)
}

func TestEmptyCommandOptions(t *testing.T) {
	data, err := json.Marshal(CommandParams{Command: CommandExpand, Input: ldvalue.String("http://example.org/in.jsonld")})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"command": "expand",
		"input": "http://example.org/in.jsonld",
		"context": null,
		"frame": null,
		"options": {}
	}`, string(data))
}

func TestCommandResponseErrorChain(t *testing.T) {
	var resp CommandResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"error": {"code": "loading remote context failed", "cause": {"code": "loading document failed", "message": "404"}}
	}`), &resp))
	require.True(t, resp.Error.IsDefined())
	assert.Equal(t, "loading remote context failed", resp.Error.Value().Code)
	require.NotNil(t, resp.Error.Value().Cause)
	assert.Equal(t, "loading document failed", resp.Error.Value().Cause.Code)
	assert.True(t, resp.Result.IsNull())
}
