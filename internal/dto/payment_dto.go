package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanCreditDTO struct {
	FeatureKey string `json:"feature_key"`
	Total      int    `json:"total"`
}

type PlanResponse struct {
	Id              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Tagline         string          `json:"tagline,omitempty"`
	Price           float64         `json:"price"`
	DiscountPercent int             `json:"discount_percent"`
	DurationDays    int             `json:"duration_days"`
	IsMostPopular   bool            `json:"is_most_popular"`
	Credits         []PlanCreditDTO `json:"credits"`
}

type CheckoutRequest struct {
	PlanId    uuid.UUID `json:"plan_id" validate:"required"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty"`
}

type CheckoutResponse struct {
	SubscriptionId  uuid.UUID `json:"subscription_id"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
	SnapToken       string    `json:"snap_token"`
}

type AddonCheckoutRequest struct {
	FeatureKey string `json:"feature_key" validate:"required"`
	Credits    int    `json:"credits" validate:"required,min=1"`
	FirstName  string `json:"first_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
}

type AddonCheckoutResponse struct {
	TransactionId   uuid.UUID `json:"transaction_id"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
	SnapToken       string    `json:"snap_token"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
}

// Purchase kinds carried on the internal purchase-completed topic.
const (
	PurchaseKindSubscription = "subscription"
	PurchaseKindAddon        = "addon"
)

// PurchaseCompletedMessage fans a settled payment out to the shell layer.
type PurchaseCompletedMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	Kind       string    `json:"kind"`
	FeatureKey string    `json:"feature_key,omitempty"`
}

type FeatureCreditDTO struct {
	FeatureKey string `json:"feature_key"`
	Used       int    `json:"used"`
	Total      int    `json:"total"`
}

type SubscriptionResponse struct {
	Id        uuid.UUID          `json:"id"`
	PlanId    uuid.UUID          `json:"plan_id"`
	PlanName  string             `json:"plan_name,omitempty"`
	Status    string             `json:"status"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Credits   []FeatureCreditDTO `json:"credits"`
}
