package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline, cache and HTTP events as debug log lines, so
// -v shows where a render spends its time.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnResolveStart(_ context.Context, path string) {
	h.logger.Debug("resolving", "path", path)
}

func (h *logHooks) OnResolveComplete(_ context.Context, path string, files int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("resolved", "path", path, "files", files, "duration", d)
}

func (h *logHooks) OnBuildComplete(_ context.Context, descriptors, links int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "err", err)
		return
	}
	h.logger.Debug("built tables", "descriptors", descriptors, "links", links, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("rendered", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "format", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "format", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "format", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "path", path, "status", status, "duration", d)
}
