package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// APIClient is a JSON client for end-to-end tests against an httptest server.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(
	baseURL string,
	httpClient *http.Client,
) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (a APIClient) Get(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.httpRequest(ctx, http.MethodGet, endpoint, headers, http.NoBody, dest, errDest)
}

// Post sends request as JSON. A nil request sends an empty body.
func (a APIClient) Post(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	request any,
	dest any,
	errDest any,
) (*http.Response, error) {
	if request == nil {
		return a.httpRequest(ctx, http.MethodPost, endpoint, headers, http.NoBody, dest, errDest)
	}

	b, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return a.httpRequest(ctx, http.MethodPost, endpoint, headers, bytes.NewReader(b), dest, errDest)
}

// PostJSON sends a raw body, e.g. one that does not fit the request type.
func (a APIClient) PostJSON(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	requestJSON string,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.httpRequest(ctx, http.MethodPost, endpoint, headers, strings.NewReader(requestJSON), dest, errDest)
}

// DialWebSocket opens a websocket to the same server. The handshake response
// body is closed here.
func (a APIClient) DialWebSocket(
	ctx context.Context,
	endpoint string,
	headers http.Header,
) (*websocket.Conn, error) {
	url := "ws" + strings.TrimPrefix(a.baseURL, "http") + endpoint

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, headers)
	if resp != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("websocket.Dial: %w", err)
	}

	return conn, nil
}

func (a APIClient) httpRequest(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	headers http.Header,
	payload io.Reader,
	dest any,
	errDest any,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, httpMethod, a.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if httpMethod == http.MethodPost && headers.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header[k] = v
	}

	slog.DebugContext(ctx, "test request", slog.String("method", req.Method), slog.String("url", req.URL.String()))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		slog.DebugContext(ctx, "test response", slog.String("dump", string(dump)))
	}

	if err = parseResponse(resp, dest, errDest); err != nil {
		return nil, fmt.Errorf("parseResponse: %w", err)
	}

	return resp, nil
}

// parseResponse decodes 2xx bodies into dest and everything else into errDest.
func parseResponse(r *http.Response, dest, errDest any) error {
	success := r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices

	switch {
	case success && dest != nil:
		if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
			return fmt.Errorf("json.Decode(success destination): %w", err)
		}
	case !success && errDest != nil:
		if err := json.NewDecoder(r.Body).Decode(errDest); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("json.Decode(err destination): %w", err)
		}
	}

	return nil
}
