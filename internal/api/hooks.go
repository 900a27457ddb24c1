package api

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// AccessLog writes one info line per completed request. Register it with
// observability.SetHTTPHooks.
type AccessLog struct {
	Logger *log.Logger
}

func (AccessLog) OnRequest(context.Context, string, string, string) {}

func (a AccessLog) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	logger := a.Logger
	if logger == nil {
		logger = log.Default()
	}
	logf := logger.Info
	if status >= 500 {
		logf = logger.Error
	}
	logf(method+" "+path, "status", status, "id", requestID, "took", d.Round(time.Microsecond))
}
