package shell

import (
	"context"
	"net/url"
	"sync"
	"time"

	"primoboost-be/internal/entity"
	"primoboost-be/internal/pkg/logger"

	"github.com/google/uuid"
)

const (
	defaultWelcomeOfferDelay = 2 * time.Second
	defaultAlertAutoDismiss  = 5 * time.Second
	defaultToastDuration     = 5 * time.Second
	defaultMobileBreakpoint  = 768

	resetPasswordPath = "/reset-password"

	subscriptionToastMessage = "Subscription activated successfully!"
)

// SubscriptionLookup fetches the subscription snapshot the shell caches.
type SubscriptionLookup interface {
	GetSubscriptionFor(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error)
}

// SnapshotPublisher receives a state copy after every settled update, so
// connected clients can mirror the shell.
type SnapshotPublisher interface {
	PublishShellSnapshot(sessionId uuid.UUID, state State)
}

// Options carries the shell's timing knobs. Zero values fall back to the
// production defaults.
type Options struct {
	WelcomeOfferDelay time.Duration
	AlertAutoDismiss  time.Duration
	ToastDuration     time.Duration
	MobileBreakpoint  int
}

func (o Options) withDefaults() Options {
	if o.WelcomeOfferDelay <= 0 {
		o.WelcomeOfferDelay = defaultWelcomeOfferDelay
	}
	if o.AlertAutoDismiss <= 0 {
		o.AlertAutoDismiss = defaultAlertAutoDismiss
	}
	if o.ToastDuration <= 0 {
		o.ToastDuration = defaultToastDuration
	}
	if o.MobileBreakpoint <= 0 {
		o.MobileBreakpoint = defaultMobileBreakpoint
	}
	return o
}

// Shell owns the modal, banner, and cached-subscription state for one client
// session. All state mutations run on a single event loop goroutine; public
// methods post commands into that loop, so callers never touch state
// concurrently. Each reactive rule reads the fields it depends on and leaves
// everything else alone.
type Shell struct {
	id            uuid.UUID
	opts          Options
	router        *Router
	subscriptions SubscriptionLookup
	publisher     SnapshotPublisher
	logger        logger.ILogger

	state  State
	settle []func()

	postAuth    Continuation
	toolTrigger Continuation

	// Timers fire back into the event loop. Sequence counters fence stale
	// callbacks from cancelled timers.
	welcomeTimer *time.Timer
	welcomeSeq   int
	alertTimer   *time.Timer
	alertSeq     int
	toastTimer   *time.Timer
	toastSeq     int

	commands chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func NewShell(id uuid.UUID, router *Router, subscriptions SubscriptionLookup, publisher SnapshotPublisher, log logger.ILogger, opts Options) *Shell {
	s := &Shell{
		id:            id,
		opts:          opts.withDefaults(),
		router:        router,
		subscriptions: subscriptions,
		publisher:     publisher,
		logger:        log,
		state: State{
			Path:          "/",
			AuthModalView: AuthViewLogin,
		},
		commands: make(chan func(), 64),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Shell) Id() uuid.UUID {
	return s.id
}

func (s *Shell) run() {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
			s.drainSettle()
			s.publish()
		case <-s.done:
			s.stopTimers()
			return
		}
	}
}

// Stop tears down the event loop. Pending commands are dropped.
func (s *Shell) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *Shell) post(cmd func()) {
	select {
	case s.commands <- cmd:
	case <-s.done:
	}
}

// enqueueSettle defers fn until the current command's state updates have
// been applied. The queue drains in FIFO order before the snapshot publish.
func (s *Shell) enqueueSettle(fn func()) {
	s.settle = append(s.settle, fn)
}

func (s *Shell) drainSettle() {
	for len(s.settle) > 0 {
		fn := s.settle[0]
		s.settle = s.settle[1:]
		fn()
	}
}

func (s *Shell) publish() {
	if s.publisher != nil {
		s.publisher.PublishShellSnapshot(s.id, s.state.clone())
	}
}

func (s *Shell) stopTimers() {
	if s.welcomeTimer != nil {
		s.welcomeTimer.Stop()
	}
	if s.alertTimer != nil {
		s.alertTimer.Stop()
	}
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
}

// Snapshot returns a copy of the current state, serialized through the event
// loop so it never observes a half-applied update.
func (s *Shell) Snapshot() State {
	resp := make(chan State, 1)
	s.post(func() {
		resp <- s.state.clone()
	})
	select {
	case st := <-resp:
		return st
	case <-s.done:
		return State{}
	}
}

// Navigate records a URL change and runs every route-keyed reactive rule:
// recovery-link interception, the welcome-offer timer, and the auth gate.
// The mobile menu always closes on navigation.
func (s *Shell) Navigate(path, rawQuery, fragment string) {
	s.post(func() {
		s.state.Path = path
		s.state.RawQuery = rawQuery
		s.state.Fragment = fragment
		s.state.MobileMenuOpen = false

		s.interceptRecoveryLink()
		s.syncWelcomeOffer()
		s.evaluateAuthGate()
	})
}

// interceptRecoveryLink checks both the query string and the fragment for a
// recovery marker paired with an access token. The redirect keeps the
// fragment untouched so the token survives byte-for-byte; the query string
// is dropped.
func (s *Shell) interceptRecoveryLink() {
	query, _ := url.ParseQuery(s.state.RawQuery)
	frag, _ := url.ParseQuery(s.state.Fragment)

	isRecovery := query.Get("type") == "recovery" || frag.Get("type") == "recovery"
	hasToken := query.Get("access_token") != "" || frag.Get("access_token") != ""

	if isRecovery && hasToken && s.state.Path != resetPasswordPath {
		s.logger.Info("Shell", "Recovery link detected, redirecting to reset password", map[string]interface{}{
			"session_id": s.id,
		})
		s.state.Path = resetPasswordPath
		s.state.RawQuery = ""
	}
}

func (s *Shell) syncWelcomeOffer() {
	if s.welcomeTimer != nil {
		s.welcomeTimer.Stop()
		s.welcomeTimer = nil
	}
	s.welcomeSeq++

	if s.state.Path != "/" {
		s.state.WelcomeOfferOpen = false
		return
	}

	seq := s.welcomeSeq
	s.welcomeTimer = time.AfterFunc(s.opts.WelcomeOfferDelay, func() {
		s.post(func() {
			if seq != s.welcomeSeq || s.state.Path != "/" {
				return
			}
			s.state.WelcomeOfferOpen = true
		})
	})
}

// SetAuth feeds the auth provider's signals into the shell. An identity
// change refreshes the subscription cache; logout clears it.
func (s *Shell) SetAuth(loading, authenticated bool, user *entity.User) {
	s.post(func() {
		identityChanged := authChanged(s.state.Authenticated, s.state.User, authenticated, user)

		s.state.AuthLoading = loading
		s.state.Authenticated = authenticated
		s.state.User = user

		if identityChanged {
			s.refreshSubscription()
		}
		s.evaluateAuthGate()
	})
}

func authChanged(wasAuth bool, was *entity.User, isAuth bool, is *entity.User) bool {
	if wasAuth != isAuth {
		return true
	}
	if (was == nil) != (is == nil) {
		return true
	}
	if was != nil && is != nil && was.Id != is.Id {
		return true
	}
	return false
}

func (s *Shell) refreshSubscription() {
	if !s.state.Authenticated || s.state.User == nil {
		s.state.Subscription = nil
		return
	}
	sub, err := s.subscriptions.GetSubscriptionFor(context.Background(), s.state.User.Id)
	if err != nil {
		// Fetch failures keep the previous snapshot; the UI degrades to
		// whatever it already had.
		s.logger.Warn("Shell", "Subscription fetch failed", map[string]interface{}{
			"session_id": s.id,
			"error":      err.Error(),
		})
		return
	}
	s.state.Subscription = sub
}

// evaluateAuthGate runs the post-signup gating rule. It never runs on the
// reset-password route or while the auth provider is still loading, and it
// takes no action while the onboarding flag is nil (profile still loading).
func (s *Shell) evaluateAuthGate() {
	if s.state.Path == resetPasswordPath {
		return
	}
	if s.state.AuthLoading {
		return
	}

	if s.state.Authenticated && s.state.User != nil {
		seen := s.state.User.HasSeenOnboardingPrompt
		if seen == nil {
			return
		}
		if *seen {
			s.state.AuthModalOpen = false
			s.state.AuthModalView = AuthViewLogin
			if fn := s.postAuth.TakeAndClear(); fn != nil {
				s.enqueueSettle(fn)
			}
		}
		return
	}

	s.state.AuthModalView = AuthViewLogin
}

// SetViewport force-closes the mobile menu once the viewport is wide enough
// to show the full navigation. Idempotent.
func (s *Shell) SetViewport(width int) {
	s.post(func() {
		s.state.ViewportWidth = width
		if width >= s.opts.MobileBreakpoint {
			s.state.MobileMenuOpen = false
		}
	})
}

func (s *Shell) ToggleMobileMenu() {
	s.post(func() {
		s.state.MobileMenuOpen = !s.state.MobileMenuOpen
	})
}

func (s *Shell) CloseMobileMenu() {
	s.post(func() {
		s.state.MobileMenuOpen = false
	})
}

// closePrimaryModals enforces mutual exclusion between the three primary
// modals. Opening any one of them goes through here first.
func (s *Shell) closePrimaryModals() {
	s.state.AuthModalOpen = false
	s.state.PlanSelectionOpen = false
	s.state.SubscriptionPlansOpen = false
}

// OpenAuthModal shows the auth modal in the login view and optionally
// registers a continuation to run after authentication completes.
func (s *Shell) OpenAuthModal(postAuth func()) {
	s.post(func() {
		s.closePrimaryModals()
		s.state.AuthModalOpen = true
		s.state.AuthModalView = AuthViewLogin
		s.state.MobileMenuOpen = false
		if postAuth != nil {
			s.postAuth.Set(postAuth)
		} else {
			s.postAuth.Clear()
		}
	})
}

func (s *Shell) SetAuthModalView(view AuthModalView) {
	s.post(func() {
		s.state.AuthModalView = view
	})
}

func (s *Shell) CloseAuthModal() {
	s.post(func() {
		s.state.AuthModalOpen = false
		s.state.AuthModalView = AuthViewLogin
	})
}

// OpenPlanSelection shows the paywall modal, optionally scoped to the
// feature whose credits ran out.
func (s *Shell) OpenPlanSelection(featureId string, expandAddons bool) {
	s.post(func() {
		s.closePrimaryModals()
		s.state.PlanSelectionOpen = true
		s.state.PlanSelectionFeatureId = featureId
		s.state.ExpandAddons = expandAddons
		s.state.MobileMenuOpen = false
	})
}

// SelectCareerPlans swaps the paywall modal for the full subscription-plans
// modal.
func (s *Shell) SelectCareerPlans() {
	s.post(func() {
		s.state.PlanSelectionOpen = false
		s.state.SubscriptionPlansOpen = true
	})
}

func (s *Shell) OpenSubscriptionPlans() {
	s.post(func() {
		s.closePrimaryModals()
		s.state.SubscriptionPlansOpen = true
		s.state.ExpandAddons = false
	})
}

func (s *Shell) ClosePlanSelection() {
	s.post(func() {
		s.state.PlanSelectionOpen = false
		s.state.PlanSelectionFeatureId = ""
	})
}

func (s *Shell) CloseSubscriptionPlans() {
	s.post(func() {
		s.state.SubscriptionPlansOpen = false
	})
}

// ShowAlert displays a notice. Alerts without an action label auto-dismiss
// after a fixed timeout; alerts with one stay until dismissed.
func (s *Shell) ShowAlert(alert Alert) {
	s.post(func() {
		s.showAlert(alert)
	})
}

func (s *Shell) showAlert(alert Alert) {
	if alert.Severity == "" {
		alert.Severity = AlertInfo
	}
	s.state.Alert = &alert
	s.alertSeq++

	if s.alertTimer != nil {
		s.alertTimer.Stop()
		s.alertTimer = nil
	}
	if alert.ActionLabel != "" {
		return
	}

	seq := s.alertSeq
	s.alertTimer = time.AfterFunc(s.opts.AlertAutoDismiss, func() {
		s.post(func() {
			if seq != s.alertSeq {
				return
			}
			s.state.Alert = nil
		})
	})
}

// RunAlertAction invokes the pending alert's action callback, then
// dismisses the alert.
func (s *Shell) RunAlertAction() {
	s.post(func() {
		alert := s.state.Alert
		s.dismissAlert()
		if alert != nil && alert.Action != nil {
			s.enqueueSettle(alert.Action)
		}
	})
}

func (s *Shell) DismissAlert() {
	s.post(func() {
		s.dismissAlert()
	})
}

func (s *Shell) dismissAlert() {
	s.state.Alert = nil
	s.alertSeq++
	if s.alertTimer != nil {
		s.alertTimer.Stop()
		s.alertTimer = nil
	}
}

func (s *Shell) DismissWelcomeOffer() {
	s.post(func() {
		s.state.WelcomeOfferOpen = false
	})
}

// SetToolContinuation registers the one-shot callback the active tool page
// wants run after a purchase unblocks it.
func (s *Shell) SetToolContinuation(fn func()) {
	if fn != nil {
		s.toolTrigger.Set(fn)
	} else {
		s.toolTrigger.Clear()
	}
}

func (s *Shell) ClearToolContinuation() {
	s.toolTrigger.Clear()
}

func (s *Shell) showToast(message string) {
	s.state.SuccessToast = message
	s.toastSeq++

	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	seq := s.toastSeq
	s.toastTimer = time.AfterFunc(s.opts.ToastDuration, func() {
		s.post(func() {
			if seq != s.toastSeq {
				return
			}
			s.state.SuccessToast = ""
		})
	})
}

// CompleteSubscriptionPurchase runs the purchase fan-out: close both
// purchase modals, show the success toast, refresh the cached subscription,
// then fire the tool continuation once state has settled. The continuation
// always observes the refreshed snapshot.
func (s *Shell) CompleteSubscriptionPurchase() {
	s.post(func() {
		s.state.SubscriptionPlansOpen = false
		s.state.PlanSelectionOpen = false
		s.showToast(subscriptionToastMessage)
		s.refreshSubscription()

		if fn := s.toolTrigger.TakeAndClear(); fn != nil {
			s.enqueueSettle(fn)
		}
	})
}

// CompleteAddonPurchase runs the same fan-out as a subscription purchase,
// with a confirmation message chosen by the purchased credit type.
func (s *Shell) CompleteAddonPurchase(featureId string) {
	s.post(func() {
		s.refreshSubscription()

		s.showAlert(Alert{
			Title:    "Purchase Complete",
			Message:  addonConfirmationMessage(featureId),
			Severity: AlertSuccess,
		})

		s.state.PlanSelectionOpen = false
		s.state.SubscriptionPlansOpen = false

		if fn := s.toolTrigger.TakeAndClear(); fn != nil {
			s.enqueueSettle(fn)
		}
	})
}

func addonConfirmationMessage(featureId string) string {
	switch featureId {
	case entity.FeatureScoreChecker:
		return "1 Resume Score Check credit added successfully!"
	case entity.FeatureOptimizer:
		return "1 JD-Based Optimization credit added successfully!"
	case entity.FeatureGuidedBuilder:
		return "1 Guided Resume Build credit added successfully!"
	case entity.FeatureLinkedInGenerator:
		return "LinkedIn Message credits added successfully!"
	default:
		return "Add-on credit(s) added successfully!"
	}
}

// Resolve dispatches the shell's current path through the route table,
// applying the admin guard against the current user.
func (s *Shell) Resolve() (*ResolvedRoute, error) {
	type result struct {
		route *ResolvedRoute
		err   error
	}
	resp := make(chan result, 1)
	s.post(func() {
		rt, err := s.router.Resolve(s.state.Path, s.state.User)
		resp <- result{route: rt, err: err}
	})
	select {
	case r := <-resp:
		return r.route, r.err
	case <-s.done:
		return nil, ErrRouteNotFound
	}
}
