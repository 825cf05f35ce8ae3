package service

import (
	"context"
	"testing"

	"primoboost-be/internal/dto"
)

func TestAddonPrice(t *testing.T) {
	tests := []struct {
		featureKey string
		want       float64
		wantOK     bool
	}{
		{"score-checker", 19, true},
		{"optimizer", 49, true},
		{"guided-builder", 99, true},
		{"linkedin-generator", 29, true},
		{"unknown-feature", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.featureKey, func(t *testing.T) {
			got, ok := addonPrice(tt.featureKey)
			if ok != tt.wantOK {
				t.Fatalf("addonPrice(%q) ok = %v, want %v", tt.featureKey, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("addonPrice(%q) = %v, want %v", tt.featureKey, got, tt.want)
			}
		})
	}
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-test")

	// Nil repositories are safe here: the signature check must fail before
	// any persistence is touched.
	s := &paymentService{}

	err := s.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:      "7f5e1c8a",
		StatusCode:   "200",
		GrossAmount:  "16400.00",
		SignatureKey: "definitely-not-the-signature",
	})
	if err == nil || err.Error() != "invalid signature" {
		t.Fatalf("HandleNotification error = %v, want invalid signature", err)
	}
}

func TestHandleNotificationRequiresServerKey(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "")

	s := &paymentService{}
	err := s.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{OrderId: "x"})
	if err == nil {
		t.Fatal("HandleNotification accepted a webhook without a configured server key")
	}
}
