package server

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/retireplan/spendgo/internal/compare"
	"github.com/retireplan/spendgo/internal/config"
	"github.com/retireplan/spendgo/internal/domain"
	"github.com/retireplan/spendgo/internal/store"
)

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok"})
}

// handleProject projects every scenario of the posted plan and returns the
// schedule set.
func (s *Server) handleProject(ctx *fasthttp.RequestCtx) {
	var plan config.PlanFile
	if err := json.Unmarshal(ctx.PostBody(), &plan); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidatePlan(&plan); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	set, err := s.calc.RunScenarios(ctx, plan.ScenarioValues())
	if err != nil {
		s.writeError(ctx, projectionStatus(err), err.Error())
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, set)
}

// handleCompare runs the plan's base scenario against template-derived
// and transform-derived alternatives.
func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Templates) == 0 && len(req.Transforms) == 0 {
		s.writeError(ctx, fasthttp.StatusBadRequest, "at least one template or transform is required")
		return
	}
	if err := s.parser.ValidatePlan(&req.Plan); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	result, err := s.compare.Compare(ctx, req.Plan.ScenarioValues(), compare.CompareOptions{
		BaseScenarioName: req.BaseScenario,
		Templates:        req.Templates,
		Transforms:       req.Transforms,
	})
	if err != nil {
		// Unknown templates and scenario names are request problems, as is
		// any config the transforms produced.
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleTemplates(ctx *fasthttp.RequestCtx) {
	names := s.compare.TemplateRegistry.List()
	sort.Strings(names)

	resp := TemplatesResponse{Templates: make([]TemplateInfo, 0, len(names))}
	for _, name := range names {
		t, ok := s.compare.TemplateRegistry.Get(name)
		if !ok {
			continue
		}
		resp.Templates = append(resp.Templates, TemplateInfo{
			Name:        t.Name,
			Description: t.Description,
		})
	}
	s.writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleListSchedules(ctx *fasthttp.RequestCtx) {
	names, err := s.store.List(ctx)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(ctx, fasthttp.StatusOK, ListResponse{Schedules: names})
}

func (s *Server) handleScheduleByName(ctx *fasthttp.RequestCtx, name string) {
	if name == "" || strings.Contains(name, "/") {
		s.writeError(ctx, fasthttp.StatusNotFound, "no schedule route for "+string(ctx.Path()))
		return
	}

	switch string(ctx.Method()) {
	case fasthttp.MethodGet:
		schedule, err := s.store.Load(ctx, name)
		if err != nil {
			s.writeError(ctx, storeStatus(err), err.Error())
			return
		}
		s.writeJSON(ctx, fasthttp.StatusOK, schedule)

	case fasthttp.MethodPut:
		var schedule domain.SpendingSchedule
		if err := json.Unmarshal(ctx.PostBody(), &schedule); err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if schedule.ScenarioName == "" {
			schedule.ScenarioName = name
		}
		if err := s.store.Save(ctx, name, &schedule); err != nil {
			s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)

	case fasthttp.MethodDelete:
		if err := s.store.Delete(ctx, name); err != nil {
			s.writeError(ctx, storeStatus(err), err.Error())
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNoContent)

	default:
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed,
			fmt.Sprintf("method %s not allowed for %s", ctx.Method(), ctx.Path()))
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	if status >= fasthttp.StatusInternalServerError {
		s.logger.Errorf("http %d: %s", status, message)
	} else {
		s.logger.Debugf("http %d: %s", status, message)
	}
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

// projectionStatus classifies engine failures: bad plan input is the
// client's problem, anything else is ours.
func projectionStatus(err error) int {
	if errors.Is(err, domain.ErrInvalidConfig) || errors.Is(err, domain.ErrInvalidInput) {
		return fasthttp.StatusBadRequest
	}
	return fasthttp.StatusInternalServerError
}

func storeStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return fasthttp.StatusNotFound
	}
	return fasthttp.StatusInternalServerError
}
