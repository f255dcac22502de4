package jsonldtests

import (
	"encoding/json"
	"net/http"

	"github.com/ldconformance/ld-test-harness/framework"
	"github.com/ldconformance/ld-test-harness/framework/harness"
	"github.com/ldconformance/ld-test-harness/framework/ldtest"
	"github.com/ldconformance/ld-test-harness/servicedef"
	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/gorilla/mux"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// ServiceClient is the part of the test harness that RemoteProcessor uses.
type ServiceClient interface {
	NewCallbackEndpoint(
		handler http.Handler,
		logger framework.Logger,
		options ...harness.CallbackEndpointOption,
	) *harness.CallbackEndpoint
	SendCommand(command interface{}, logger framework.Logger, responseOut interface{}) error
}

// RemoteProcessor runs operations by sending commands to a test service. For each command it
// opens a callback endpoint that serves the test's document loader.
type RemoteProcessor struct {
	service ServiceClient
}

// NewRemoteProcessor creates a RemoteProcessor.
func NewRemoteProcessor(service ServiceClient) *RemoteProcessor {
	return &RemoteProcessor{service: service}
}

func (p *RemoteProcessor) Invoke(t *ldtest.T, command string, args suite.Args) (ldvalue.Value, error) {
	logger := t.DebugLogger()
	var loaderURL string
	if args.Options.DocumentLoader != nil {
		endpoint := p.service.NewCallbackEndpoint(
			newDocumentHandler(args.Options.DocumentLoader, framework.LoggerWithPrefix(logger, "[document loader] ")),
			logger,
			harness.CallbackEndpointDescription("document loader for "+t.ID().String()),
		)
		defer endpoint.Close()
		loaderURL = endpoint.BaseURL()
	}

	var resp servicedef.CommandResponse
	if err := p.service.SendCommand(makeCommandParams(command, args, loaderURL), logger, &resp); err != nil {
		t.Errorf("unable to send command to test service: %s", err)
		t.FailNow()
	}
	if resp.Error.IsDefined() {
		info := resp.Error.Value()
		return ldvalue.Null(), errorFromInfo(&info)
	}
	return resp.Result, nil
}

func makeCommandParams(command string, args suite.Args, loaderURL string) servicedef.CommandParams {
	return servicedef.CommandParams{
		Command: command,
		Input:   args.Input,
		Context: args.Context,
		Frame:   args.Frame,
		Options: servicedef.CommandOptions{
			DocumentLoader: loaderURL,
			Format:         args.Options.Format,
			ExpandContext:  args.Options.ExpandContext,
			Values:         args.Options.Values,
		},
	}
}

// errorFromInfo rebuilds a reported error chain, so that suite.ErrorCode sees the same codes
// that the processor reported.
func errorFromInfo(info *servicedef.ErrorInfo) error {
	if info == nil {
		return nil
	}
	err := &suite.OperationError{Code: info.Code, Message: info.Message}
	if info.Cause != nil {
		err.Cause = errorFromInfo(info.Cause)
	}
	if err.Code == "" && err.Message == "" && err.Cause == nil {
		err.Message = "operation failed"
	}
	return err
}

func newDocumentHandler(loader suite.DocumentLoader, logger framework.Logger) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(servicedef.CallbackPathDocument, func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get(servicedef.CallbackParamURL)
		if url == "" {
			logger.Printf("request had no %q parameter", servicedef.CallbackParamURL)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		logger.Printf("got request for %s", url)
		doc, err := loader.LoadDocument(url)
		if err != nil {
			logger.Printf("%s", err)
			writeJSON(w, http.StatusNotFound, servicedef.DocumentErrorResponse{
				Code:    suite.ErrorCode(err),
				Message: err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, servicedef.DocumentResponse{
			DocumentURL: doc.DocumentURL,
			ContextURL:  doc.ContextURL,
			Document:    doc.Document,
		})
	}).Methods("GET")
	return router
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
