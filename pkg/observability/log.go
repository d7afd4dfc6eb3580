package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// Failed saves are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger (log.Default() if nil).
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetLayoutHooks(h)
	SetStoreHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnCommit(_ context.Context, board, op string, widgets int, d time.Duration) {
	h.logger.Debug("commit", "board", board, "op", op, "widgets", widgets, "took", d)
}

func (h *LogHooks) OnReject(_ context.Context, board, op, code string) {
	h.logger.Debug("reject", "board", board, "op", op, "code", code)
}

func (h *LogHooks) OnLoad(_ context.Context, key string, hit bool, size int, err error) {
	h.logger.Debug("load", "key", key, "hit", hit, "bytes", size, "err", err)
}

func (h *LogHooks) OnSave(_ context.Context, key string, size int, d time.Duration) {
	h.logger.Debug("save", "key", key, "bytes", size, "took", d)
}

func (h *LogHooks) OnSaveError(_ context.Context, key string, err error) {
	h.logger.Warn("save failed", "key", key, "err", err)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ StoreHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
