package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ldconformance/ld-test-harness/framework"
)

// TestServiceInfo is the status information returned by the test service.
type TestServiceInfo struct {
	TestServiceInfoBase

	// FullData is the entire status response, which may have properties beyond the base ones.
	FullData []byte
}

// TestServiceInfoBase is the set of status properties that every test service must provide.
type TestServiceInfoBase struct {
	// Name is the name of the processor being tested, such as "php-json-ld".
	Name string `json:"name"`

	// Capabilities lists the operations the processor supports.
	Capabilities framework.Capabilities `json:"capabilities"`
}

func queryTestServiceInfo(url string, timeout time.Duration, output io.Writer) (TestServiceInfo, error) {
	fmt.Fprintf(output, "Connecting to test service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := http.DefaultClient.Get(url)
		if err == nil {
			fmt.Fprintln(output)
			respData, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode != 200 {
				return TestServiceInfo{}, fmt.Errorf("test service returned status code %d", resp.StatusCode)
			}
			if readErr != nil {
				return TestServiceInfo{}, readErr
			}
			if len(respData) == 0 {
				fmt.Fprintf(output, "Status query successful, but service provided no metadata\n")
				return TestServiceInfo{}, nil
			}
			fmt.Fprintf(output, "Status query returned metadata: %s\n", string(respData))
			var base TestServiceInfoBase
			if err := json.Unmarshal(respData, &base); err != nil {
				return TestServiceInfo{}, fmt.Errorf("malformed status response from test service: %s", string(respData))
			}
			return TestServiceInfo{TestServiceInfoBase: base, FullData: respData}, nil
		}
		if !time.Now().Before(deadline) {
			return TestServiceInfo{}, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// StopService tells the test service that it should exit.
func (h *TestHarness) StopService() error {
	req, _ := http.NewRequest(http.MethodDelete, h.testServiceBaseURL, nil)
	resp, err := http.DefaultClient.Do(req)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err == nil && resp.StatusCode >= 300 {
		return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
	}
	// an I/O error is normal here if the service quit before responding
	return nil
}

// SendCommand posts a command to the test service and decodes its JSON response into
// responseOut, if that is not nil. The command is converted to JSON with json.Marshal.
func (h *TestHarness) SendCommand(
	command interface{},
	logger framework.Logger,
	responseOut interface{},
) error {
	if logger == nil {
		logger = h.logger
	}
	data, err := json.Marshal(command)
	if err != nil {
		return err
	}
	logger.Printf("Sending command: %s", string(data))
	body, _, err := doRequest(http.MethodPost, h.testServiceBaseURL, data)
	if err != nil {
		return err
	}
	if responseOut != nil {
		if len(body) == 0 {
			return errors.New("expected a response body but got none")
		}
		logger.Printf("Response: %s", string(body))
		if err := json.Unmarshal(body, responseOut); err != nil {
			return fmt.Errorf("malformed response from test service: %w", err)
		}
	}
	return nil
}

func doRequest(method, url string, body []byte) ([]byte, http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if len(respBody) > 0 {
			message = " (" + string(respBody) + ")"
		}
		err = fmt.Errorf("test service returned error %d for %s %s%s", resp.StatusCode, method, url, message)
	}
	return respBody, resp.Header, err
}
