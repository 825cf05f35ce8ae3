package shell

import "primoboost-be/internal/entity"

type AuthModalView string

const (
	AuthViewLogin            AuthModalView = "login"
	AuthViewSignup           AuthModalView = "signup"
	AuthViewForgotPassword   AuthModalView = "forgot_password"
	AuthViewSuccess          AuthModalView = "success"
	AuthViewPostSignupPrompt AuthModalView = "post_signup_prompt"
	AuthViewResetPassword    AuthModalView = "reset_password"
)

type AlertSeverity string

const (
	AlertInfo    AlertSeverity = "info"
	AlertSuccess AlertSeverity = "success"
	AlertWarning AlertSeverity = "warning"
	AlertError   AlertSeverity = "error"
)

// Alert is the shell's single user-visible notice channel. Alerts without an
// action label auto-dismiss; an explicit action requires a deliberate dismiss.
type Alert struct {
	Title       string        `json:"title"`
	Message     string        `json:"message"`
	Severity    AlertSeverity `json:"severity"`
	ActionLabel string        `json:"action_label,omitempty"`
	Action      func()        `json:"-"`
}

// State is the full bundle of shell-owned UI state. It is mutated only from
// inside the shell's event loop; consumers receive copies via Snapshot.
type State struct {
	Path          string `json:"path"`
	RawQuery      string `json:"raw_query,omitempty"`
	Fragment      string `json:"fragment,omitempty"`
	ViewportWidth int    `json:"viewport_width"`

	AuthModalOpen bool          `json:"auth_modal_open"`
	AuthModalView AuthModalView `json:"auth_modal_view"`

	PlanSelectionOpen      bool   `json:"plan_selection_open"`
	PlanSelectionFeatureId string `json:"plan_selection_feature_id,omitempty"`
	ExpandAddons           bool   `json:"expand_addons"`

	SubscriptionPlansOpen bool `json:"subscription_plans_open"`
	MobileMenuOpen        bool `json:"mobile_menu_open"`
	WelcomeOfferOpen      bool `json:"welcome_offer_open"`

	Alert        *Alert `json:"alert,omitempty"`
	SuccessToast string `json:"success_toast,omitempty"`

	AuthLoading   bool         `json:"auth_loading"`
	Authenticated bool         `json:"authenticated"`
	User          *entity.User `json:"user,omitempty"`

	Subscription *entity.UserSubscription `json:"subscription,omitempty"`
}

func (s State) clone() State {
	out := s
	if s.Alert != nil {
		alert := *s.Alert
		out.Alert = &alert
	}
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	if s.Subscription != nil {
		sub := *s.Subscription
		out.Subscription = &sub
	}
	return out
}
