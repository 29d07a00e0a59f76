package llamacpp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"localaichat/configs"
	"localaichat/internal/domain"
	"localaichat/internal/ports/output"
)

// Compile-time check to ensure LlamaClientAdapter implements the output ports
var (
	_ output.CompletionTransport = (*LlamaClientAdapter)(nil)
	_ output.ModelLister         = (*LlamaClientAdapter)(nil)
)

const tracerName = "localaichat/llamacpp"

// Streaming configuration constants
const (
	initialLineBufferSize = 64 * 1024
	maxLineSize           = 1024 * 1024
)

// LlamaClientAdapter struct - Output adapter for llama.cpp's OpenAI-compatible server.
// It performs exactly one HTTP request per call and never retries.
type LlamaClientAdapter struct {
	httpClient *http.Client
	tracer     trace.Tracer
	timeout    time.Duration
}

// NewLlamaClientAdapter func - Creates new llama.cpp client adapter.
// A zero timeout leaves requests unbounded. A nil provider uses the global one.
func NewLlamaClientAdapter(config configs.Llama, provider trace.TracerProvider) *LlamaClientAdapter {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 0
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("llama.cpp client adapter initialized, timeout: %v", timeout)

	return &LlamaClientAdapter{
		httpClient: httpClient,
		tracer:     provider.Tracer(tracerName),
		timeout:    timeout,
	}
}

func (a *LlamaClientAdapter) newRequest(ctx context.Context, url string, body any, headers map[string]string) (*http.Request, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

func (a *LlamaClientAdapter) startSpan(ctx context.Context, name, url string, stream bool) (context.Context, trace.Span) {
	return a.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", url),
			attribute.Bool("llm.stream", stream),
		),
	)
}

func endWithError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

// Post sends a blocking chat completion and returns the raw body regardless of status.
// Transport failures are returned unchanged.
func (a *LlamaClientAdapter) Post(ctx context.Context, url string, body any, headers map[string]string) ([]byte, error) {
	ctx, span := a.startSpan(ctx, "llamacpp.post", url, false)

	req, err := a.newRequest(ctx, url, body, headers)
	if err != nil {
		endWithError(span, err)
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		endWithError(span, err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		endWithError(span, err)
		return nil, err
	}

	if resp.StatusCode >= 400 {
		logrus.Warnf("llama.cpp answered status %d: %s", resp.StatusCode, raw)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	span.End()

	return raw, nil
}

// PostStream sends a streaming chat completion and returns the event-stream lines.
// An error status is reported before any line is read.
func (a *LlamaClientAdapter) PostStream(ctx context.Context, url string, body any, headers map[string]string) (output.LineStream, error) {
	ctx, span := a.startSpan(ctx, "llamacpp.stream", url, true)

	req, err := a.newRequest(ctx, url, body, headers)
	if err != nil {
		endWithError(span, err)
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		endWithError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		err := fmt.Errorf("%w: status %d - %s", domain.ErrServerStatus, resp.StatusCode, string(raw))
		endWithError(span, err)
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, initialLineBufferSize), maxLineSize)

	logrus.Debugf("Started streaming chat completion: %s", url)

	return &lineStream{body: resp.Body, scanner: scanner, span: span}, nil
}

// lineStream reads response lines until EOF or Close
type lineStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	span    trace.Span
	lines   int

	closeOnce sync.Once
	closeErr  error
}

func (s *lineStream) Next() bool {
	if !s.scanner.Scan() {
		return false
	}
	s.lines++
	return true
}

func (s *lineStream) Line() string { return s.scanner.Text() }

func (s *lineStream) Err() error { return s.scanner.Err() }

// Close releases the connection and ends the request span
func (s *lineStream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
		s.span.SetAttributes(attribute.Int("llm.stream.lines", s.lines))
		if err := s.scanner.Err(); err != nil {
			endWithError(s.span, err)
			return
		}
		s.span.End()
	})
	return s.closeErr
}

// modelsURL derives the models endpoint from a chat completions URL
func modelsURL(apiURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(apiURL, "/"), "/chat/completions")
	return trimmed + "/models"
}

// ListModels queries the /v1/models endpoint next to apiURL
func (a *LlamaClientAdapter) ListModels(ctx context.Context, apiURL string) ([]domain.ModelInfo, error) {
	url := modelsURL(apiURL)

	ctx, span := a.tracer.Start(ctx, "llamacpp.models",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", url)),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list models request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d - %s", domain.ErrServerStatus, resp.StatusCode, string(raw))
	}

	var modelsResp modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to parse models response: %w", err)
	}

	models := make([]domain.ModelInfo, len(modelsResp.Data))
	for i, m := range modelsResp.Data {
		models[i] = domain.ModelInfo{
			ID:      m.ID,
			Object:  m.Object,
			OwnedBy: m.OwnedBy,
		}
	}

	logrus.Infof("Listed %d models from llama.cpp", len(models))

	return models, nil
}

// modelsResponse represents the response from the /v1/models endpoint
type modelsResponse struct {
	Object string `json:"object"`
	Data   []struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}
