package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"primoboost-be/internal/constant"
	"primoboost-be/pkg/intent"
	"primoboost-be/pkg/llm"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) ChatWithSystem(ctx context.Context, systemPrompt, userPrompt string, options ...llm.Option) (string, error) {
	p.calls++
	return p.reply, p.err
}

func newTestChatbot(provider llm.Provider) *chatbotService {
	return &chatbotService{
		llmProvider: provider,
		matcher:     intent.NewMatcher(constant.ChatKnowledgeBase),
		logger:      testLogger{},
	}
}

func TestResolveReplyPrefersRemote(t *testing.T) {
	provider := &stubProvider{reply: "remote answer"}
	s := newTestChatbot(provider)

	// "pricing" has a strong local match; the remote reply must still win.
	reply, source := s.resolveReply(context.Background(), "what is the pricing?")
	if source != ReplySourceRemote {
		t.Fatalf("source = %q, want %q", source, ReplySourceRemote)
	}
	if reply != "remote answer" {
		t.Errorf("reply = %q, want the remote completion", reply)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

func TestResolveReplyFallsBackToLocalMatch(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
	}{
		{"provider error", &stubProvider{err: errors.New("proxy unreachable")}},
		{"empty completion", &stubProvider{reply: ""}},
		{"no provider configured", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestChatbot(tt.provider)

			reply, source := s.resolveReply(context.Background(), "how much does a plan cost?")
			if source != ReplySourceLocal {
				t.Fatalf("source = %q, want %q", source, ReplySourceLocal)
			}
			if !strings.Contains(reply, "Leader Plan - Rs.16,400 - 100 Resume Credits") {
				t.Errorf("pricing reply missing plan table, got %q", reply)
			}
		})
	}
}

func TestResolveReplyTerminalFallback(t *testing.T) {
	s := newTestChatbot(&stubProvider{err: errors.New("down")})

	reply, source := s.resolveReply(context.Background(), "zzz qqq xyzzy")
	if source != ReplySourceFallback {
		t.Fatalf("source = %q, want %q", source, ReplySourceFallback)
	}
	if reply != constant.ChatFallbackMessage {
		t.Errorf("reply = %q, want the canned fallback", reply)
	}
	if !strings.Contains(reply, "primoboostai@gmail.com") {
		t.Error("fallback does not point at the support address")
	}
}

func TestTryRemoteNeverFailsUpward(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
		wantOK   bool
		want     string
	}{
		{"nil provider", nil, false, ""},
		{"transport error", &stubProvider{err: errors.New("502")}, false, ""},
		{"blank reply", &stubProvider{reply: ""}, false, ""},
		{"usable reply", &stubProvider{reply: "hello"}, true, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestChatbot(tt.provider)

			got, ok := s.tryRemote(context.Background(), "hi")
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocalMatchTieBreaksByTableOrder(t *testing.T) {
	s := newTestChatbot(nil)

	// "pdf" and "blog" each score an exact single-keyword hit; the export
	// entry is registered first.
	reply, source := s.resolveReply(context.Background(), "pdf blog")
	if source != ReplySourceLocal {
		t.Fatalf("source = %q, want %q", source, ReplySourceLocal)
	}
	if !strings.Contains(reply, "export your optimized resume as a PDF") {
		t.Errorf("tie did not resolve to the earlier entry, got %q", reply)
	}
}
