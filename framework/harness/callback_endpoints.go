package harness

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/ldconformance/ld-test-harness/framework"
	"github.com/ldconformance/ld-test-harness/framework/helpers"
)

const endpointPathPrefix = "/endpoints/"

type callbackEndpointsManager struct {
	endpoints       map[string]*CallbackEndpoint
	lastEndpointID  int
	externalBaseURL string
	logger          framework.Logger
	lock            sync.Mutex
}

// CallbackEndpoint is an endpoint on the harness's own listener that the test service can send
// requests to, such as a document loader for one test.
type CallbackEndpoint struct {
	owner       *callbackEndpointsManager
	id          string
	description string
	basePath    string
	handler     http.Handler
	cancels     []*context.CancelFunc
	requests    int
	closed      bool
	logger      framework.Logger
	lock        sync.Mutex
	closing     sync.Once
}

type CallbackEndpointOption = helpers.ConfigOptionFunc[CallbackEndpoint]

// CallbackEndpointDescription sets a description that is used in log messages.
func CallbackEndpointDescription(description string) CallbackEndpointOption {
	return func(e *CallbackEndpoint) error {
		e.description = description
		return nil
	}
}

func newCallbackEndpointsManager(externalBaseURL string, logger framework.Logger) *callbackEndpointsManager {
	return &callbackEndpointsManager{
		endpoints:       make(map[string]*CallbackEndpoint),
		externalBaseURL: externalBaseURL,
		logger:          logger,
	}
}

func (m *callbackEndpointsManager) newCallbackEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...CallbackEndpointOption,
) *CallbackEndpoint {
	if logger == nil {
		logger = m.logger
	}
	e := &CallbackEndpoint{
		owner:   m,
		handler: handler,
		logger:  logger,
	}
	_ = helpers.ApplyOptions(e, options...)
	m.lock.Lock()
	m.lastEndpointID++
	e.id = strconv.Itoa(m.lastEndpointID)
	e.basePath = endpointPathPrefix + e.id
	m.endpoints[e.id] = e
	m.lock.Unlock()
	return e
}

func (m *callbackEndpointsManager) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, endpointPathPrefix) {
		m.logger.Printf("Received request for unrecognized URL path %s", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	endpointID, subpath, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, endpointPathPrefix), "/")
	path := "/" + subpath

	m.lock.Lock()
	e := m.endpoints[endpointID]
	m.lock.Unlock()
	if e == nil {
		m.logger.Printf("Received request for unrecognized endpoint %s", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			m.logger.Printf("Unexpected error trying to read request body: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body = data
	}

	ctx, canceller := context.WithCancel(r.Context())
	defer canceller()
	transformedReq := r.WithContext(ctx)
	url := *r.URL
	url.Path = path
	transformedReq.URL = &url
	transformedReq.Body = io.NopCloser(bytes.NewBuffer(body))

	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		m.logger.Printf("Received request to already-closed endpoint %s", r.URL)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	cancellerPtr := &canceller
	e.cancels = append(e.cancels, cancellerPtr)
	e.requests++
	e.lock.Unlock()

	wrappedWriter := wrappedResponseWriter{w: w}
	e.handler.ServeHTTP(&wrappedWriter, transformedReq)

	switch wrappedWriter.status {
	case http.StatusNotFound:
		e.logger.Printf("Endpoint %q (%s) returned 404 for %s %s", e.description, e.basePath, r.Method, url.RequestURI())
	case http.StatusMethodNotAllowed:
		e.logger.Printf("Endpoint %q (%s) received request with unsupported %s method for path %s", e.description,
			e.basePath, r.Method, path)
	}

	e.lock.Lock()
	for i, c := range e.cancels {
		if c == cancellerPtr { // functions can't be compared, but pointers to them can
			e.cancels = append(e.cancels[:i], e.cancels[i+1:]...)
			break
		}
	}
	e.lock.Unlock()
}

// BaseURL returns the URL that the test service should use for this endpoint.
func (e *CallbackEndpoint) BaseURL() string {
	return e.owner.externalBaseURL + e.basePath
}

// RequestCount returns the number of requests the endpoint has received.
func (e *CallbackEndpoint) RequestCount() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.requests
}

// Close unregisters the endpoint, so that later requests to it receive a 404, and cancels the
// Context of every request that is still in progress.
func (e *CallbackEndpoint) Close() {
	e.closing.Do(func() {
		e.logger.Printf("Closing endpoint %q (%s)", e.description, e.basePath)
		e.owner.lock.Lock()
		delete(e.owner.endpoints, e.id)
		e.owner.lock.Unlock()

		e.lock.Lock()
		cancellers := e.cancels
		e.cancels = nil
		e.closed = true
		e.lock.Unlock()

		for _, cancel := range cancellers {
			(*cancel)()
		}
	})
}

// wrappedResponseWriter records the status written to a ResponseWriter so that 404 and 405
// responses can be logged.
type wrappedResponseWriter struct {
	w      http.ResponseWriter
	status int
}

func (ww *wrappedResponseWriter) Header() http.Header { return ww.w.Header() }

func (ww *wrappedResponseWriter) WriteHeader(status int) {
	ww.status = status
	ww.w.WriteHeader(status)
}

func (ww *wrappedResponseWriter) Write(data []byte) (int, error) { return ww.w.Write(data) }
