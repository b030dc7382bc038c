package client

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"studydesk/utils"
)

// LoggingTransport logs every outbound request the way a server would log an
// inbound one, and tags it with an X-Request-ID header.
type LoggingTransport struct {
	Base         http.RoundTripper
	Logger       *log.Logger
	EnableColors bool
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := base.RoundTrip(req)
	latency := time.Since(start)

	if t.Logger == nil {
		return resp, err
	}

	if err != nil {
		t.Logger.Printf("%s %s failed after %s: %v (request %s)",
			req.Method, req.URL.Path, latency, err, requestID)
		return resp, err
	}

	// Цвета для разных статусов
	var statusColor, methodColor, resetColor string
	if t.EnableColors {
		statusColor, methodColor, resetColor = utils.StatusColor(resp.StatusCode), utils.MethodColor(req.Method), "\033[0m"
	}

	t.Logger.Printf("%s%s%s %s %s%d%s %s (request %s)",
		methodColor, req.Method, resetColor,
		req.URL.Path,
		statusColor, resp.StatusCode, resetColor,
		latency,
		requestID,
	)

	return resp, err
}
