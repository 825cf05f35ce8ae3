package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Feature keys for the credit-gated tools.
const (
	FeatureOptimizer         = "optimizer"
	FeatureScoreChecker      = "score-checker"
	FeatureGuidedBuilder     = "guided-builder"
	FeatureLinkedInGenerator = "linkedin-generator"
)

// SubscriptionPlan is a one-time purchase bundle of tool credits.
type SubscriptionPlan struct {
	Id              uuid.UUID
	Name            string
	Slug            string
	Tagline         string
	Price           float64
	DiscountPercent int
	DurationDays    int
	IsMostPopular   bool
	IsActive        bool
	SortOrder       int

	// Credits granted per feature key when the plan activates.
	Credits []PlanCredit
}

type PlanCredit struct {
	Id         uuid.UUID
	PlanId     uuid.UUID
	FeatureKey string
	Total      int
}

type UserSubscription struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                uuid.UUID
	Status                SubscriptionStatus
	PaymentStatus         PaymentStatus
	StartDate             time.Time
	EndDate               time.Time
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Credits []FeatureCredit
}

// FeatureCredit tracks used vs total credits for one feature on a subscription.
type FeatureCredit struct {
	Id             uuid.UUID
	SubscriptionId uuid.UUID
	FeatureKey     string
	Used           int
	Total          int
}

// AddonTransaction is a one-off credit top-up for a single feature, outside
// of the plan bundles.
type AddonTransaction struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	FeatureKey    string
	Credits       int
	Amount        float64
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
