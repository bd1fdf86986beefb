package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/gommon/log"
)

const jsonRPCVersion = "2.0"

// Client talks to the remote store over JSON-RPC 2.0 on a single HTTP endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	seq        atomic.Uint64
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Invoke(ctx context.Context, operation string, args Args) (json.RawMessage, error) {
	if args == nil {
		args = Args{}
	}

	id := c.seq.Add(1)
	body, err := json.Marshal(rpcRequest{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Method:  operation,
		Params:  args,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	// Not found only ever arrives in the body; a 404 here means a wrong endpoint.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: remote store failed with status code: %d", operation, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", operation, err)
	}

	var out rpcResponse
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", operation, err)
	}

	log.Debugf("command %s (rpc id %d) answered in %dms", operation, id, time.Since(started).Milliseconds())
	if out.Error != nil {
		return nil, &RemoteError{Operation: operation, Code: out.Error.Code, Message: out.Error.Message}
	}
	return out.Result, nil
}
