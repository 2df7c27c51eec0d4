// Package api exposes the alert index and rule files over HTTP.
// Package api 通过 HTTP 提供告警索引和规则文件。
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/livp123/suriwatch/internal/cache"
	"github.com/livp123/suriwatch/internal/utils/logger"
	"github.com/livp123/suriwatch/pkg/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
// Options 配置 Server。
type Options struct {
	Listen         string
	Cache          *cache.Cache
	Rules          *storage.RuleFile
	MetricsEnabled bool
	Logger         *zap.SugaredLogger
	Now            func() time.Time
}

type Server struct {
	listen         string
	cache          *cache.Cache
	rules          *storage.RuleFile
	metricsEnabled bool
	log            *zap.SugaredLogger
	now            func() time.Time
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.Get(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		listen:         opts.Listen,
		cache:          opts.Cache,
		rules:          opts.Rules,
		metricsEnabled: opts.MetricsEnabled,
		log:            opts.Logger,
		now:            opts.Now,
	}
}

// Handler returns the routed HTTP handler.
// Handler 返回注册好路由的 HTTP 处理器。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API Endpoints
	mux.HandleFunc("/api/alerts", s.handleAlerts)
	mux.HandleFunc("/api/alerts/all", s.handleAlertsAll)
	mux.HandleFunc("/api/rules", s.handleRules)
	mux.HandleFunc("/api/rules/merge", s.handleRulesMerge)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/version", s.handleVersion)
	if s.metricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	// UI (Embedded)
	mux.HandleFunc("/", s.handleUI)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
// Start 持续提供服务直到 ctx 被取消，然后优雅关闭。
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("🚀 Alert viewer starting on http://localhost%s", s.listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Infof("🛑 Shutting down alert viewer")
		return srv.Shutdown(shutdownCtx)
	}
}
