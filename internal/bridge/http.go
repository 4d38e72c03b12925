package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-Id"

// HTTP invokes commands on a backend served by the command handler at
// POST {baseURL}/invoke/{command}.
type HTTP struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTP(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
	Code   string          `json:"code"`
}

func (h *HTTP) Invoke(ctx context.Context, command string, args any, out any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%s: encode args: %w", command, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/invoke/"+command, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", command, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	defer resp.Body.Close()

	h.logger.Debug("command invoked",
		zap.String("command", command),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", command, err)
	}

	var env envelope
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("%s: decode response: %w", command, err)
		}
	}

	if resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &CommandError{
			Command: command,
			Status:  resp.StatusCode,
			Code:    env.Code,
			Message: msg,
		}
	}

	return decodeResult(command, env.Result, out)
}
