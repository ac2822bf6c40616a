package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action names understood by the provider API.
const (
	ActionGetNumber    = "getNumber"
	ActionGetStatus    = "getStatus"
	ActionSetStatus    = "setStatus"
	ActionGetBalance   = "getBalance"
	ActionGetServices  = "getServices"
	ActionGetCountries = "getCountries"
)

// Response vocabulary. The provider answers every action with a single
// plain-text line, colon-delimited when it carries fields.
const (
	AccessNumberPrefix  = "ACCESS_NUMBER"
	AccessBalancePrefix = "ACCESS_BALANCE"
	AccessCancel        = "ACCESS_CANCEL"
	AccessReady         = "ACCESS_READY"
	StatusOKPrefix      = "STATUS_OK:"
	StatusWaitCode      = "STATUS_WAIT_CODE"
	StatusCancel        = "STATUS_CANCEL"
	StatusUsed          = "STATUS_USED"
)

// setStatus codes defined by the provider protocol.
const (
	SetStatusRetry  = "3"
	SetStatusCancel = "8"
)

const callTimeout = 15 * time.Second

// Gateway issues named actions against the remote SMS-verification service
// and returns the raw response line.
type Gateway interface {
	Call(ctx context.Context, action string, params map[string]string) (string, error)
}

// TransportError means the provider could not be reached or answered with a
// broken HTTP exchange. It carries no provider semantics.
type TransportError struct {
	Action string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider call %s failed: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a gateway client for the given provider endpoint. The
// api key is appended to every call.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: callTimeout,
		},
	}
}

// Call performs a single GET against the provider. No retries happen here;
// retry policy belongs to the caller.
func (c *Client) Call(ctx context.Context, action string, params map[string]string) (string, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("api_key", c.apiKey)
	query.Set("action", action)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", &TransportError{Action: action, Err: err}
	}
	req.Header.Add("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &TransportError{Action: action, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Action: action, Err: err}
	}

	return strings.TrimSpace(string(body)), nil
}
