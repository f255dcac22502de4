package suite

import (
	"errors"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/ldconformance/ld-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Constants used by the document loader simulator.
const (
	ContextLinkRel  = "http://www.w3.org/ns/json-ld#context"
	MediaTypeJSONLD = "application/ld+json"
)

// RemoteDocument is the result of loading a document.
type RemoteDocument struct {
	// DocumentURL is the final URL of the document, after any redirect.
	DocumentURL string `json:"documentUrl"`
	// ContextURL is the URL of a context supplied by a Link header.
	ContextURL opt.Maybe[string] `json:"contextUrl"`
	Document   ldvalue.Value     `json:"document"`
}

// DocumentLoader retrieves remote documents for an operation.
type DocumentLoader interface {
	LoadDocument(url string) (RemoteDocument, error)
}

// DocumentLoaderFunc adapts a function to DocumentLoader.
type DocumentLoaderFunc func(url string) (RemoteDocument, error)

func (f DocumentLoaderFunc) LoadDocument(url string) (RemoteDocument, error) { return f(url) }

type documentLoaderSimulator struct {
	test *TestCase
}

// NewDocumentLoader returns a document loader that serves the suite's files in place of the
// remote suite, and simulates the HTTP behavior that the test's options describe for its input
// document: redirects, Link headers and content types. It never makes a network request.
func (tc *TestCase) NewDocumentLoader() DocumentLoader {
	return documentLoaderSimulator{test: tc}
}

func (d documentLoaderSimulator) LoadDocument(documentURL string) (RemoteDocument, error) {
	tc := d.test
	doc := RemoteDocument{DocumentURL: documentURL}

	options := tc.DeclaredOptions()
	if !options.IsNull() && documentURL == tc.Base {
		redirectTo, hasRedirect := options.TryGetByKey(OptionRedirectTo)
		if hasRedirect && httpStatus(options) >= 300 {
			doc.DocumentURL = tc.manifest.BaseIRI + redirectTo.StringValue()
		} else if link, ok := options.TryGetByKey(OptionHTTPLink); ok {
			contentType := options.GetByKey(OptionContentType).StringValue()
			if contentType == "" && hasExtension(documentURL, ".jsonld") {
				contentType = MediaTypeJSONLD
			}
			candidates := ParseLinkHeader(strings.Join(stringValues(link), ","))[ContextLinkRel]
			if len(candidates) > 0 && contentType != MediaTypeJSONLD {
				if len(candidates) > 1 {
					return RemoteDocument{}, &DocumentLoadError{Code: CodeMultipleContextLinkHeaders, URL: documentURL}
				}
				doc.ContextURL = opt.Some(candidates[0].Target)
			}
		}
	}

	loader := tc.manifest.loader
	fixturePath, ok := FixtureStore{Root: loader.RootDir}.PathForURL(loader.RemoteBaseURL, doc.DocumentURL)
	if !ok {
		return RemoteDocument{}, &DocumentLoadError{
			Code: CodeLoadingDocumentFailed,
			URL:  doc.DocumentURL,
			Err:  errors.New("URL is not part of the test suite"),
		}
	}
	document, err := ReadJSON(fixturePath)
	if err != nil {
		return RemoteDocument{}, &DocumentLoadError{Code: CodeLoadingDocumentFailed, URL: doc.DocumentURL, Err: err}
	}
	doc.Document = document
	return doc, nil
}

// httpStatus accepts either a number or a numeric string.
func httpStatus(options ldvalue.Value) int {
	status := options.GetByKey(OptionHTTPStatus)
	switch status.Type() {
	case ldvalue.NumberType:
		return status.IntValue()
	case ldvalue.StringType:
		n, err := strconv.Atoi(strings.TrimSpace(status.StringValue()))
		if err == nil {
			return n
		}
	}
	return 0
}

func hasExtension(documentURL, ext string) bool {
	p := documentURL
	if u, err := url.Parse(documentURL); err == nil {
		p = u.Path
	}
	return path.Ext(p) == ext
}
