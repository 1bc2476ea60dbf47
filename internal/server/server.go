package server

import (
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/retireplan/spendgo/internal/calculation"
	"github.com/retireplan/spendgo/internal/compare"
	"github.com/retireplan/spendgo/internal/config"
	"github.com/retireplan/spendgo/internal/store"
)

// Server exposes the projection engine over HTTP. Schedules persist through
// the configured ScheduleStore.
type Server struct {
	calc    *calculation.CalculationEngine
	compare *compare.CompareEngine
	parser  *config.InputParser
	store   store.ScheduleStore
	logger  calculation.Logger
	http    *fasthttp.Server
}

// New builds a server around the given store. A nil logger falls back to
// the engine's no-op logger.
func New(scheduleStore store.ScheduleStore, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	calcEngine := calculation.NewCalculationEngine()
	calcEngine.SetLogger(logger)

	s := &Server{
		calc:    calcEngine,
		compare: compare.NewCompareEngine(calcEngine),
		parser:  config.NewInputParser(),
		store:   scheduleStore,
		logger:  logger,
	}
	s.http = &fasthttp.Server{
		Handler: s.Handler(),
		Name:    "spendgo",
	}
	return s
}

// Handler returns the request router, exposed separately so tests can drive
// it without a listener.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())
		s.logger.Debugf("http %s %s", method, path)

		switch {
		case path == "/healthz" && method == fasthttp.MethodGet:
			s.handleHealth(ctx)
		case path == "/v1/project" && method == fasthttp.MethodPost:
			s.handleProject(ctx)
		case path == "/v1/compare" && method == fasthttp.MethodPost:
			s.handleCompare(ctx)
		case path == "/v1/templates" && method == fasthttp.MethodGet:
			s.handleTemplates(ctx)
		case path == "/v1/schedules" && method == fasthttp.MethodGet:
			s.handleListSchedules(ctx)
		case strings.HasPrefix(path, "/v1/schedules/"):
			s.handleScheduleByName(ctx, strings.TrimPrefix(path, "/v1/schedules/"))
		default:
			s.writeError(ctx, fasthttp.StatusNotFound, "no route for "+method+" "+path)
		}
	}
}

// ListenAndServe blocks serving requests on addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("listening on %s", addr)
	return s.http.ListenAndServe(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	s.logger.Infof("shutting down")
	return s.http.Shutdown()
}
