package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinkHeaderSingleEntry(t *testing.T) {
	links := ParseLinkHeader(`<context.jsonld>; rel="http://www.w3.org/ns/json-ld#context"; type="application/ld+json"`)
	require.Len(t, links[ContextLinkRel], 1)
	entry := links[ContextLinkRel][0]
	assert.Equal(t, "context.jsonld", entry.Target)
	assert.Equal(t, ContextLinkRel, entry.Rel())
	assert.Equal(t, "application/ld+json", entry.Params["type"])
}

func TestParseLinkHeaderMultipleEntries(t *testing.T) {
	links := ParseLinkHeader(`<a.jsonld>; rel="alternate", <b.jsonld>; rel=alternate, <c,d.jsonld>; rel="next"; title="x, y"`)
	require.Len(t, links["alternate"], 2)
	assert.Equal(t, "a.jsonld", links["alternate"][0].Target)
	assert.Equal(t, "b.jsonld", links["alternate"][1].Target)
	require.Len(t, links["next"], 1)
	assert.Equal(t, "c,d.jsonld", links["next"][0].Target)
	assert.Equal(t, "x, y", links["next"][0].Params["title"])
}

func TestParseLinkHeaderWithoutRel(t *testing.T) {
	links := ParseLinkHeader(`<a.jsonld>`)
	require.Len(t, links[""], 1)
	assert.Equal(t, "a.jsonld", links[""][0].Target)
}

func TestParseLinkHeaderIgnoresMalformedEntries(t *testing.T) {
	assert.Len(t, ParseLinkHeader(`not a link`), 0)
	assert.Len(t, ParseLinkHeader(``), 0)
}
