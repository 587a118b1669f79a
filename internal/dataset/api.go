package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// maxPayload caps the response body read from the API.
const maxPayload = 64 << 20

// APIClient fetches the dataset from the spreadsheet-backed HTTP function.
type APIClient struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewAPIClient creates a client for url. A zero timeout means 30 seconds.
func NewAPIClient(url string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &APIClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    logger.WithComponent("dataset"),
	}
}

// Fetch performs one GET and decodes the payload. Missing section keys
// become empty lists.
func (c *APIClient) Fetch(ctx context.Context) (*models.Dataset, error) {
	const op = "Fetch"

	c.log.Debug().Str("url", c.url).Msg("Fetching dataset")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrFetchFailed, err), "invalid request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrFetchFailed, err), c.url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrFetchFailed, err), "reading response body")
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return nil, NewDatasetError(op, ErrFetchFailed, "endpoint returned an HTML page instead of JSON")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if msg := statusMessage(body); msg != "" {
			details += ": " + msg
		}
		return nil, NewDatasetError(op, ErrFetchFailed, details)
	}

	ds, err := DecodeJSON(body, c.log)
	if err != nil {
		return nil, WrapDatasetError(op, err, "")
	}

	c.log.Info().
		Int("taxpayers", len(ds.Taxpayers)).
		Int("assessments", len(ds.Assessments)).
		Int("payments", len(ds.Payments)).
		Msg("Dataset fetched")

	return ds, nil
}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func statusMessage(body []byte) string {
	var env envelope
	if json.Unmarshal(body, &env) != nil {
		return ""
	}
	return env.Message
}

// DecodeJSON decodes an API payload. An object with "status":"gagal" is an
// API-side failure and yields ErrAPIStatus with the server's message.
func DecodeJSON(body []byte, log zerolog.Logger) (*models.Dataset, error) {
	const op = "DecodeJSON"

	var raw map[string]json.RawMessage
	if err := newDecoder(body).Decode(&raw); err != nil {
		return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrDecodeFailed, err), "payload is not a JSON object")
	}

	if status, ok := raw["status"]; ok {
		var env envelope
		_ = json.Unmarshal(status, &env.Status)
		if strings.EqualFold(env.Status, "gagal") {
			if msg, ok := raw["message"]; ok {
				_ = json.Unmarshal(msg, &env.Message)
			}
			return nil, NewDatasetError(op, ErrAPIStatus, env.Message)
		}
	}

	sections := make(map[string][]Record, len(Sections))
	for _, key := range Sections {
		data, ok := raw[key]
		if !ok || string(data) == "null" {
			continue
		}
		var records []Record
		if err := newDecoder(data).Decode(&records); err != nil {
			return nil, NewDatasetError(op, fmt.Errorf("%w: %w", ErrDecodeFailed, err), key)
		}
		sections[key] = records
	}

	return Decode(sections, log), nil
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}
