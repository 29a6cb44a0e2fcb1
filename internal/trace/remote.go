package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const remoteTimeout = 5 * time.Second

// RemoteSink posts each record as JSON to a tracing service endpoint.
type RemoteSink struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewRemoteSink(endpoint, apiKey string) *RemoteSink {
	return &RemoteSink{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: remoteTimeout},
	}
}

func (s *RemoteSink) Write(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	// detached from ctx so a cancelled turn still reports its error event
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("tracing endpoint returned %s", resp.Status)
	}
	return nil
}

func (s *RemoteSink) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
