package servicedef

import (
	o "github.com/ldconformance/ld-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// CallbackPathDocument is the path, relative to a command's documentLoader URL, that the service
// requests to load a document: GET <documentLoader>/document?url=<url>.
const CallbackPathDocument = "/document"

// CallbackParamURL is the query parameter holding the URL of the document to load.
const CallbackParamURL = "url"

// DocumentResponse is the body of a successful document callback.
type DocumentResponse struct {
	DocumentURL string          `json:"documentUrl"`
	ContextURL  o.Maybe[string] `json:"contextUrl"`
	Document    ldvalue.Value   `json:"document"`
}

// DocumentErrorResponse is the body of a failed document callback, which has a 404 status. Code
// is the error code the processor should report.
type DocumentErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
