package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Slug            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Tagline         string    `gorm:"type:text"`
	Price           float64   `gorm:"type:decimal(10,2);not null"`
	DiscountPercent int       `gorm:"default:0"`
	DurationDays    int       `gorm:"default:365"`
	IsMostPopular   bool      `gorm:"default:false"`
	IsActive        bool      `gorm:"default:true"`
	SortOrder       int       `gorm:"default:0"`

	Credits []*PlanCredit `gorm:"foreignKey:PlanId"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type PlanCredit struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanId     uuid.UUID `gorm:"type:uuid;not null;index"`
	FeatureKey string    `gorm:"type:varchar(100);not null"`
	Total      int       `gorm:"not null"`
}

func (PlanCredit) TableName() string {
	return "plan_credits"
}

type UserSubscription struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                uuid.UUID `gorm:"type:uuid;not null;index"`
	Status                string    `gorm:"type:varchar(50);not null"`
	PaymentStatus         string    `gorm:"type:varchar(50);not null"`
	StartDate             time.Time `gorm:"not null"`
	EndDate               time.Time `gorm:"not null"`
	MidtransTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`

	Credits []*FeatureCredit `gorm:"foreignKey:SubscriptionId"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

type FeatureCredit struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId uuid.UUID `gorm:"type:uuid;not null;index"`
	FeatureKey     string    `gorm:"type:varchar(100);not null"`
	Used           int       `gorm:"default:0"`
	Total          int       `gorm:"not null"`
}

func (FeatureCredit) TableName() string {
	return "feature_credits"
}

type AddonTransaction struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	FeatureKey    string    `gorm:"type:varchar(100);not null"`
	Credits       int       `gorm:"not null"`
	Amount        float64   `gorm:"type:decimal(10,2);not null"`
	PaymentStatus string    `gorm:"type:varchar(50);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (AddonTransaction) TableName() string {
	return "addon_transactions"
}
