package providers

import (
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of an error response body is carried into the
// returned error.
const maxErrorBody = 2048

// checkStatus turns a non-2xx response into an error carrying the status and
// response body so upstream failures can be diagnosed from the log alone.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("unexpected status %s: %s", resp.Status, string(body))
}
