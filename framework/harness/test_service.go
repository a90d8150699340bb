package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Trieg/browser-test-harness/framework"
	"github.com/Trieg/browser-test-harness/serviceinfo"
)

// ServiceWindow represents a browser window that we have asked the test service to open,
// which the test harness will interact with.
type ServiceWindow struct {
	resourceURL string
	logger      framework.Logger
}

func queryTestServiceInfo(url string, timeout time.Duration, output io.Writer) (serviceinfo.TestServiceInfo, error) {
	fmt.Fprintf(output, "Connecting to test service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := http.DefaultClient.Get(url)
		if err == nil {
			fmt.Fprintln(output)
			if resp.StatusCode != 200 {
				return serviceinfo.Empty(), fmt.Errorf("test service returned status code %d", resp.StatusCode)
			}
			if resp.Body == nil {
				fmt.Fprintf(output, "Status query successful, but service provided no metadata\n")
				return serviceinfo.Empty(), nil
			}
			respData, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return serviceinfo.Empty(), err
			}
			fmt.Fprintf(output, "Status query returned metadata: %s\n", string(respData))
			var base serviceinfo.TestServiceInfoBase
			if err := json.Unmarshal(respData, &base); err != nil {
				return serviceinfo.Empty(), fmt.Errorf("malformed status response from test service: %s", string(respData))
			}
			return serviceinfo.TestServiceInfo{TestServiceInfoBase: base, FullData: respData}, nil
		}
		if !time.Now().Before(deadline) {
			return serviceinfo.Empty(), fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// StopService tells the test service that it should exit.
func (h *TestHarness) StopService() error {
	req, _ := http.NewRequest("DELETE", h.testServiceBaseURL, nil)
	resp, err := http.DefaultClient.Do(req)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err == nil && resp.StatusCode >= 300 {
		return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
	}
	// It's normal for the request to return an I/O error if the service immediately quit before sending a response
	return nil
}

// NewServiceWindow tells the test service to open a new browser window, based on the
// parameters we provide. The test harness can interact with it via the returned
// ServiceWindow. The window is assumed to remain open inside the test service until we
// explicitly close it.
//
// The format of windowParams is defined by the servicedef package; this low-level method
// simply calls json.Marshal to convert whatever it is to JSON.
func (h *TestHarness) NewServiceWindow(
	windowParams interface{},
	description string,
	logger framework.Logger,
) (*ServiceWindow, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	data, err := json.Marshal(windowParams)
	if err != nil {
		return nil, err
	}

	logger.Printf("Opening browser window (%s) with parameters: %s", description, string(data))
	_, headers, err := doRequest("POST", h.testServiceBaseURL, data)
	if err != nil {
		return nil, err
	}
	resourceURL := headers.Get("Location")
	if resourceURL == "" {
		return nil, errors.New("test service did not return a Location header with a resource URL")
	}
	if !strings.HasPrefix(resourceURL, "http:") {
		resourceURL = h.testServiceBaseURL + resourceURL
	}

	w := &ServiceWindow{
		resourceURL: resourceURL,
		logger:      logger,
	}

	return w, nil
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
		if body != nil {
			message = " (" + string(body) + ")"
		}
		err = fmt.Errorf("test service returned error %d for %s %s%s", resp.StatusCode, method, url, message)
	}
	return respBody, resp.Header, err
}

// Close tells the test service to close this window.
func (w *ServiceWindow) Close() error {
	w.logger.Printf("Closing %s", w.resourceURL)
	_, _, err := doRequest("DELETE", w.resourceURL, nil)
	if err != nil {
		w.logger.Printf("DELETE request to test service failed: %s", err)
	}
	return err
}

// SendCommand sends a command with no parameters to the window.
func (w *ServiceWindow) SendCommand(
	command string,
	logger framework.Logger,
	responseOut interface{},
) error {
	return w.SendCommandWithParams(
		map[string]interface{}{"command": command},
		logger,
		responseOut,
	)
}

// SendCommandWithParams sends a command to the window.
func (w *ServiceWindow) SendCommandWithParams(
	allParams interface{},
	logger framework.Logger,
	responseOut interface{},
) error {
	if logger == nil {
		logger = w.logger
	}
	data, _ := json.Marshal(allParams)
	logger.Printf("Sending command: %s", string(data))
	body, _, err := doRequest("POST", w.resourceURL, data)
	if err != nil {
		return err
	}
	if responseOut != nil {
		if body == nil {
			return errors.New("expected a response body but got none")
		}
		if err = json.Unmarshal(body, responseOut); err != nil {
			return err
		}
		logger.Printf("Response: %s", string(body))
	}
	return nil
}
