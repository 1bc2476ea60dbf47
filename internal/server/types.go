package server

import (
	"github.com/retireplan/spendgo/internal/config"
)

// CompareRequest asks for the plan's base scenario projected against
// template-derived and transform-derived alternatives.
type CompareRequest struct {
	Plan         config.PlanFile `json:"plan"`
	BaseScenario string          `json:"base_scenario,omitempty"`
	Templates    []string        `json:"templates,omitempty"`
	Transforms   []string        `json:"transforms,omitempty"`
}

// ListResponse carries the stored schedule names.
type ListResponse struct {
	Schedules []string `json:"schedules"`
}

// TemplateInfo describes one built-in comparison template.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplatesResponse lists the built-in comparison templates.
type TemplatesResponse struct {
	Templates []TemplateInfo `json:"templates"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
