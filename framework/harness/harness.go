package harness

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ldconformance/ld-test-harness/framework"
)

const httpListenerTimeout = time.Second * 10

// TestHarness manages communication with a test service: a small HTTP server, written for each
// processor under test, that performs operations on the harness's behalf.
//
// It always talks to a single test service, which it verifies is alive on startup. Tests send
// it commands with SendCommand, and can create callback endpoints (NewCallbackEndpoint) that
// the service calls back into while it is handling a command.
type TestHarness struct {
	testServiceBaseURL string
	testServiceInfo    TestServiceInfo
	endpoints          *callbackEndpointsManager
	logger             framework.Logger
}

// NewTestHarness creates a TestHarness, verifies that the test service is responding by
// querying its status resource, and starts an HTTP listener on the given port for callbacks.
// externalHostname is the name the test service should use to reach that listener.
func NewTestHarness(
	testServiceBaseURL string,
	externalHostname string,
	port int,
	statusQueryTimeout time.Duration,
	debugLogger framework.Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}
	externalBaseURL := fmt.Sprintf("http://%s:%d", externalHostname, port)
	h := &TestHarness{
		testServiceBaseURL: testServiceBaseURL,
		endpoints:          newCallbackEndpointsManager(externalBaseURL, debugLogger),
		logger:             debugLogger,
	}

	info, err := queryTestServiceInfo(testServiceBaseURL, statusQueryTimeout, startupOutput)
	if err != nil {
		return nil, err
	}
	h.testServiceInfo = info

	if err := startServer(port, http.HandlerFunc(h.endpoints.serveHTTP)); err != nil {
		return nil, err
	}
	return h, nil
}

// TestServiceInfo returns the status information received from the test service at startup.
func (h *TestHarness) TestServiceInfo() TestServiceInfo {
	return h.testServiceInfo
}

// NewCallbackEndpoint adds an endpoint that the test service can send requests to.
//
// The handler receives every request for the endpoint's base URL or any subpath of it, with
// the URL rewritten so that it sees only the subpath. The request's Context is cancelled if
// the endpoint is closed while the request is in progress.
func (h *TestHarness) NewCallbackEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...CallbackEndpointOption,
) *CallbackEndpoint {
	if logger == nil {
		logger = h.logger
	}
	return h.endpoints.newCallbackEndpoint(handler, logger, options...)
}

func startServer(port int, handler http.Handler) error {
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(200) // used below to detect that the listener is up
				return
			}
			handler.ServeHTTP(w, r)
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			if _, _, err := doRequest(http.MethodHead, fmt.Sprintf("http://localhost:%d", port), nil); err == nil {
				return nil
			}
		}
	}
}
