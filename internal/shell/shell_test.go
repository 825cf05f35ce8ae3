package shell

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"primoboost-be/internal/entity"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// trace records named events in the order they happen, across goroutines.
type trace struct {
	mu     sync.Mutex
	events []string
}

func (tr *trace) add(event string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.events = append(tr.events, event)
}

func (tr *trace) list() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]string, len(tr.events))
	copy(out, tr.events)
	return out
}

func (tr *trace) reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.events = nil
}

func (tr *trace) count(event string) int {
	n := 0
	for _, e := range tr.list() {
		if e == event {
			n++
		}
	}
	return n
}

type stubLookup struct {
	mu    sync.Mutex
	sub   *entity.UserSubscription
	err   error
	trace *trace
}

func (s *stubLookup) GetSubscriptionFor(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trace != nil {
		s.trace.add("refresh")
	}
	return s.sub, s.err
}

func newTestShell(t *testing.T, lookup SubscriptionLookup, opts Options) *Shell {
	t.Helper()
	if lookup == nil {
		lookup = &stubLookup{}
	}
	s := NewShell(uuid.New(), NewRouter(), lookup, nil, nopLogger{}, opts)
	t.Cleanup(s.Stop)
	return s
}

func waitFor(t *testing.T, s *Shell, desc string, cond func(State) bool) State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := s.Snapshot()
		if cond(st) {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", desc)
	return State{}
}

func seenPtr(v bool) *bool { return &v }

func TestNavigateClosesMobileMenu(t *testing.T) {
	s := newTestShell(t, nil, Options{})

	s.ToggleMobileMenu()
	if st := s.Snapshot(); !st.MobileMenuOpen {
		t.Fatal("menu did not open on toggle")
	}

	s.Navigate("/pricing", "", "")
	st := s.Snapshot()
	if st.MobileMenuOpen {
		t.Error("menu stayed open across navigation")
	}
	if st.Path != "/pricing" {
		t.Errorf("Path = %q, want %q", st.Path, "/pricing")
	}
}

func TestRecoveryLinkInterception(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		rawQuery     string
		fragment     string
		wantPath     string
		wantQuery    string
		wantFragment string
	}{
		{
			name:         "fragment recovery keeps token byte for byte",
			path:         "/",
			fragment:     "access_token=abc.def-123&type=recovery&expires_in=3600",
			wantPath:     "/reset-password",
			wantQuery:    "",
			wantFragment: "access_token=abc.def-123&type=recovery&expires_in=3600",
		},
		{
			name:      "query recovery drops the query string",
			path:      "/profile",
			rawQuery:  "type=recovery&access_token=tok123",
			wantPath:  "/reset-password",
			wantQuery: "",
		},
		{
			name:         "already on reset password",
			path:         "/reset-password",
			fragment:     "access_token=abc&type=recovery",
			wantPath:     "/reset-password",
			wantFragment: "access_token=abc&type=recovery",
		},
		{
			name:         "recovery marker without token",
			path:         "/",
			fragment:     "type=recovery",
			wantPath:     "/",
			wantFragment: "type=recovery",
		},
		{
			name:         "token without recovery marker",
			path:         "/",
			fragment:     "access_token=abc&type=magiclink",
			wantPath:     "/",
			wantFragment: "access_token=abc&type=magiclink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestShell(t, nil, Options{})
			s.Navigate(tt.path, tt.rawQuery, tt.fragment)

			st := s.Snapshot()
			if st.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", st.Path, tt.wantPath)
			}
			if st.RawQuery != tt.wantQuery {
				t.Errorf("RawQuery = %q, want %q", st.RawQuery, tt.wantQuery)
			}
			if st.Fragment != tt.wantFragment {
				t.Errorf("Fragment = %q, want %q", st.Fragment, tt.wantFragment)
			}
		})
	}
}

func TestWelcomeOfferShowsAfterDelay(t *testing.T) {
	s := newTestShell(t, nil, Options{WelcomeOfferDelay: 20 * time.Millisecond})

	s.Navigate("/", "", "")
	if st := s.Snapshot(); st.WelcomeOfferOpen {
		t.Fatal("welcome offer opened before the delay elapsed")
	}

	waitFor(t, s, "welcome offer to open", func(st State) bool {
		return st.WelcomeOfferOpen
	})

	s.DismissWelcomeOffer()
	if st := s.Snapshot(); st.WelcomeOfferOpen {
		t.Error("welcome offer still open after dismiss")
	}
}

func TestWelcomeOfferCancelledByNavigation(t *testing.T) {
	s := newTestShell(t, nil, Options{WelcomeOfferDelay: 20 * time.Millisecond})

	s.Navigate("/", "", "")
	s.Navigate("/pricing", "", "")

	time.Sleep(60 * time.Millisecond)
	if st := s.Snapshot(); st.WelcomeOfferOpen {
		t.Error("welcome offer fired after navigating away from home")
	}
}

func TestSetViewportClosesMobileMenu(t *testing.T) {
	s := newTestShell(t, nil, Options{})

	s.ToggleMobileMenu()
	s.SetViewport(500)
	if st := s.Snapshot(); !st.MobileMenuOpen {
		t.Fatal("narrow viewport should not touch the menu")
	}

	s.SetViewport(1024)
	st := s.Snapshot()
	if st.MobileMenuOpen {
		t.Error("menu stayed open at desktop width")
	}
	if st.ViewportWidth != 1024 {
		t.Errorf("ViewportWidth = %d, want 1024", st.ViewportWidth)
	}
}

func TestPrimaryModalsAreMutuallyExclusive(t *testing.T) {
	s := newTestShell(t, nil, Options{})

	s.OpenAuthModal(nil)
	s.OpenPlanSelection("optimizer", true)
	st := s.Snapshot()
	if st.AuthModalOpen {
		t.Error("auth modal still open after plan selection opened")
	}
	if !st.PlanSelectionOpen {
		t.Fatal("plan selection did not open")
	}
	if st.PlanSelectionFeatureId != "optimizer" || !st.ExpandAddons {
		t.Errorf("plan selection scope = (%q, %v), want (optimizer, true)", st.PlanSelectionFeatureId, st.ExpandAddons)
	}

	s.OpenSubscriptionPlans()
	st = s.Snapshot()
	if st.PlanSelectionOpen {
		t.Error("plan selection still open after subscription plans opened")
	}
	if !st.SubscriptionPlansOpen {
		t.Error("subscription plans did not open")
	}

	s.OpenAuthModal(nil)
	st = s.Snapshot()
	if st.SubscriptionPlansOpen {
		t.Error("subscription plans still open after auth modal opened")
	}
	if !st.AuthModalOpen {
		t.Error("auth modal did not open")
	}
}

func TestSelectCareerPlansSwapsModals(t *testing.T) {
	s := newTestShell(t, nil, Options{})

	s.OpenPlanSelection("", false)
	s.SelectCareerPlans()

	st := s.Snapshot()
	if st.PlanSelectionOpen {
		t.Error("plan selection still open after swap")
	}
	if !st.SubscriptionPlansOpen {
		t.Error("subscription plans did not open after swap")
	}
}

func TestAuthGateClosesModalAndFiresContinuation(t *testing.T) {
	tr := &trace{}
	s := newTestShell(t, nil, Options{})

	s.OpenAuthModal(func() { tr.add("postAuth") })
	user := &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)}
	s.SetAuth(false, true, user)

	st := waitFor(t, s, "auth modal to close", func(st State) bool {
		return !st.AuthModalOpen
	})
	if st.AuthModalView != AuthViewLogin {
		t.Errorf("AuthModalView = %q, want login", st.AuthModalView)
	}
	if got := tr.count("postAuth"); got != 1 {
		t.Fatalf("continuation ran %d times, want 1", got)
	}

	// A repeat signal with the same identity must not refire the callback.
	s.SetAuth(false, true, user)
	s.Snapshot()
	if got := tr.count("postAuth"); got != 1 {
		t.Errorf("continuation ran %d times after repeat signal, want 1", got)
	}
}

func TestAuthGateDefersWhileOnboardingFlagUnknown(t *testing.T) {
	tr := &trace{}
	s := newTestShell(t, nil, Options{})

	s.OpenAuthModal(func() { tr.add("postAuth") })

	loading := &entity.User{Id: uuid.New()}
	s.SetAuth(false, true, loading)
	st := s.Snapshot()
	if !st.AuthModalOpen {
		t.Fatal("modal closed while the onboarding flag was still unknown")
	}
	if got := tr.count("postAuth"); got != 0 {
		t.Fatalf("continuation ran %d times before the flag resolved, want 0", got)
	}

	resolved := &entity.User{Id: loading.Id, HasSeenOnboardingPrompt: seenPtr(true)}
	s.SetAuth(false, true, resolved)

	waitFor(t, s, "auth modal to close", func(st State) bool {
		return !st.AuthModalOpen
	})
	if got := tr.count("postAuth"); got != 1 {
		t.Errorf("continuation ran %d times, want 1", got)
	}
}

func TestAuthGateSkippedOnResetPasswordRoute(t *testing.T) {
	tr := &trace{}
	s := newTestShell(t, nil, Options{})

	s.Navigate("/reset-password", "", "")
	s.OpenAuthModal(func() { tr.add("postAuth") })
	s.SetAuth(false, true, &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)})

	st := s.Snapshot()
	if !st.AuthModalOpen {
		t.Error("gate ran on the reset-password route")
	}
	if got := tr.count("postAuth"); got != 0 {
		t.Errorf("continuation ran %d times on the reset-password route, want 0", got)
	}
}

func TestAuthGateSkippedWhileLoading(t *testing.T) {
	s := newTestShell(t, nil, Options{})

	s.OpenAuthModal(nil)
	s.SetAuth(true, true, &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)})

	if st := s.Snapshot(); !st.AuthModalOpen {
		t.Error("gate ran while the auth provider was still loading")
	}
}

func TestAlertAutoDismissOnlyWithoutActionLabel(t *testing.T) {
	s := newTestShell(t, nil, Options{AlertAutoDismiss: 20 * time.Millisecond})

	s.ShowAlert(Alert{Title: "Heads up", Message: "plain notice"})
	if st := s.Snapshot(); st.Alert == nil {
		t.Fatal("alert not visible after ShowAlert")
	}
	waitFor(t, s, "alert to auto-dismiss", func(st State) bool {
		return st.Alert == nil
	})

	s.ShowAlert(Alert{Title: "Confirm", Message: "needs input", ActionLabel: "Sign In"})
	time.Sleep(60 * time.Millisecond)
	st := s.Snapshot()
	if st.Alert == nil {
		t.Fatal("actionable alert auto-dismissed")
	}
	if st.Alert.Severity != AlertInfo {
		t.Errorf("Severity = %q, want default info", st.Alert.Severity)
	}
}

func TestReplacingAlertRestartsDismissTimer(t *testing.T) {
	s := newTestShell(t, nil, Options{AlertAutoDismiss: 40 * time.Millisecond})

	s.ShowAlert(Alert{Message: "first"})
	time.Sleep(25 * time.Millisecond)
	s.ShowAlert(Alert{Message: "second"})
	time.Sleep(25 * time.Millisecond)

	st := s.Snapshot()
	if st.Alert == nil || st.Alert.Message != "second" {
		t.Fatal("replacement alert dismissed by the first alert's timer")
	}
}

func TestRunAlertAction(t *testing.T) {
	tr := &trace{}
	s := newTestShell(t, nil, Options{})

	s.ShowAlert(Alert{
		Title:       "Sign in required",
		Message:     "please sign in",
		ActionLabel: "Sign In",
		Action:      func() { tr.add("action") },
	})
	s.RunAlertAction()

	st := s.Snapshot()
	if st.Alert != nil {
		t.Error("alert still visible after its action ran")
	}
	if got := tr.count("action"); got != 1 {
		t.Errorf("action ran %d times, want 1", got)
	}
}

func TestCompleteSubscriptionPurchase(t *testing.T) {
	tr := &trace{}
	lookup := &stubLookup{trace: tr, sub: &entity.UserSubscription{
		Id:     uuid.New(),
		Status: entity.SubscriptionStatusActive,
	}}
	s := newTestShell(t, lookup, Options{})

	s.SetAuth(false, true, &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)})
	s.Snapshot()
	tr.reset()

	s.OpenSubscriptionPlans()
	s.SetToolContinuation(func() { tr.add("continuation") })
	s.CompleteSubscriptionPurchase()

	st := waitFor(t, s, "purchase fan-out to settle", func(st State) bool {
		return st.SuccessToast != ""
	})
	if st.SuccessToast != "Subscription activated successfully!" {
		t.Errorf("SuccessToast = %q", st.SuccessToast)
	}
	if st.SubscriptionPlansOpen || st.PlanSelectionOpen {
		t.Error("purchase modals still open after completion")
	}
	if st.Subscription == nil {
		t.Error("subscription cache not refreshed")
	}

	got := tr.list()
	want := []string{"refresh", "continuation"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("fan-out order = %v, want %v", got, want)
	}

	// The continuation slot is one-shot.
	s.CompleteSubscriptionPurchase()
	s.Snapshot()
	if got := tr.count("continuation"); got != 1 {
		t.Errorf("continuation ran %d times across two purchases, want 1", got)
	}
}

func TestCompleteAddonPurchaseMessages(t *testing.T) {
	tests := []struct {
		name      string
		featureId string
		want      string
	}{
		{"score checker", entity.FeatureScoreChecker, "1 Resume Score Check credit added successfully!"},
		{"optimizer", entity.FeatureOptimizer, "1 JD-Based Optimization credit added successfully!"},
		{"guided builder", entity.FeatureGuidedBuilder, "1 Guided Resume Build credit added successfully!"},
		{"linkedin generator", entity.FeatureLinkedInGenerator, "LinkedIn Message credits added successfully!"},
		{"unknown feature", "mystery-tool", "Add-on credit(s) added successfully!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestShell(t, nil, Options{})
			s.SetAuth(false, true, &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)})
			s.OpenPlanSelection(tt.featureId, true)

			s.CompleteAddonPurchase(tt.featureId)

			st := s.Snapshot()
			if st.Alert == nil {
				t.Fatal("no confirmation alert after add-on purchase")
			}
			if st.Alert.Message != tt.want {
				t.Errorf("Alert.Message = %q, want %q", st.Alert.Message, tt.want)
			}
			if st.Alert.Severity != AlertSuccess {
				t.Errorf("Alert.Severity = %q, want success", st.Alert.Severity)
			}
			if st.PlanSelectionOpen || st.SubscriptionPlansOpen {
				t.Error("purchase modals still open after add-on completion")
			}
		})
	}
}

func TestSuccessToastExpires(t *testing.T) {
	s := newTestShell(t, nil, Options{ToastDuration: 20 * time.Millisecond})

	s.SetAuth(false, true, &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)})
	s.CompleteSubscriptionPurchase()

	waitFor(t, s, "toast to appear", func(st State) bool {
		return st.SuccessToast != ""
	})
	waitFor(t, s, "toast to expire", func(st State) bool {
		return st.SuccessToast == ""
	})
}

func TestSubscriptionFetchFailureKeepsPreviousSnapshot(t *testing.T) {
	lookup := &stubLookup{sub: &entity.UserSubscription{Id: uuid.New()}}
	s := newTestShell(t, lookup, Options{})

	user := &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)}
	s.SetAuth(false, true, user)
	waitFor(t, s, "subscription cache to fill", func(st State) bool {
		return st.Subscription != nil
	})

	lookup.mu.Lock()
	lookup.err = errors.New("network down")
	lookup.mu.Unlock()

	s.CompleteSubscriptionPurchase()
	st := s.Snapshot()
	if st.Subscription == nil {
		t.Error("failed refresh wiped the cached subscription")
	}
}

func TestLogoutClearsSubscription(t *testing.T) {
	lookup := &stubLookup{sub: &entity.UserSubscription{Id: uuid.New()}}
	s := newTestShell(t, lookup, Options{})

	s.SetAuth(false, true, &entity.User{Id: uuid.New(), HasSeenOnboardingPrompt: seenPtr(true)})
	waitFor(t, s, "subscription cache to fill", func(st State) bool {
		return st.Subscription != nil
	})

	s.SetAuth(false, false, nil)
	st := s.Snapshot()
	if st.Subscription != nil {
		t.Error("subscription survived logout")
	}
	if st.Authenticated {
		t.Error("still authenticated after logout")
	}
}
