package server

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/limmers2015/Car-Part-Connection/internal/httpd"
	"github.com/limmers2015/Car-Part-Connection/internal/metrics"
	"github.com/limmers2015/Car-Part-Connection/internal/version"
)

func (s *Server) handleHealth(req *httpd.Request, res *httpd.Response) {
	_ = res.WriteJSON(200, map[string]string{
		"status":     "ok",
		"request_id": uuid.NewString(),
		"env":        s.cfg.AppEnv,
	})
}

func (s *Server) handleVersion(req *httpd.Request, res *httpd.Response) {
	_ = res.WriteJSON(200, version.Get())
}

func (s *Server) handleMetrics(req *httpd.Request, res *httpd.Response) {
	body, err := metrics.Render()
	if err != nil {
		slog.Error("Failed to render metrics", "error", err)
		_ = res.WriteError(500, "metrics_failed")
		return
	}
	_ = res.WriteRaw(200, metrics.ContentType, body)
}
