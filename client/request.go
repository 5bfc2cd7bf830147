package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
)

// StatusError is returned for any non 2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

func (e StatusError) Error() string {
	return fmt.Sprintf("http status: %d: %q", e.Code, e.Body)
}

func (c *DefaultClient) getResource(ctx context.Context, result interface{}, path string) error {
	return c.reqWithMethodAndPayload(ctx, http.MethodGet, path, result, nil)
}

func (c *DefaultClient) postResource(ctx context.Context, resource interface{}, result interface{}, path string) error {
	return c.reqWithMethodAndPayload(ctx, http.MethodPost, path, result, resource)
}

func (c *DefaultClient) reqWithMethodAndPayload(ctx context.Context, method string, path string, result interface{}, reqBody interface{}) error {
	var req *http.Request
	var err error

	if reqBody != nil {
		body := new(bytes.Buffer)
		err := json.NewEncoder(body).Encode(reqBody)
		if err != nil {
			return err
		}
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL.String()+path, body)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL.String()+path, nil)
		if err != nil {
			return err
		}
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
