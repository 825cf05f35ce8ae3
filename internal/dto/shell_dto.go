package dto

import "github.com/google/uuid"

type CreateShellSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
}

type ShellNavigateRequest struct {
	Path     string `json:"path" validate:"required"`
	RawQuery string `json:"raw_query"`
	Fragment string `json:"fragment"`
}

type ShellViewportRequest struct {
	Width int `json:"width" validate:"required,min=1"`
}

type ShellAlertRequest struct {
	Title       string `json:"title" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Severity    string `json:"severity" validate:"omitempty,oneof=info success warning error"`
	ActionLabel string `json:"action_label"`
}

type ShellAuthModalRequest struct {
	View string `json:"view" validate:"omitempty,oneof=login signup forgot_password success post_signup_prompt reset_password"`
}

type ShellPlanSelectionRequest struct {
	FeatureId    string `json:"feature_id"`
	ExpandAddons bool   `json:"expand_addons"`
}

type ShellRouteResponse struct {
	Pattern string            `json:"pattern"`
	Page    string            `json:"page"`
	Params  map[string]string `json:"params,omitempty"`
}
