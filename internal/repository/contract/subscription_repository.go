package contract

import (
	"context"

	"primoboost-be/internal/entity"
	"primoboost-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	// Plans
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
	FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error
	FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error)
	FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error)

	// Feature credits
	CreateCredits(ctx context.Context, credits []*entity.FeatureCredit) error
	UpdateCredit(ctx context.Context, credit *entity.FeatureCredit) error
	FindCreditsBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.FeatureCredit, error)

	// Add-on transactions
	CreateAddonTransaction(ctx context.Context, txn *entity.AddonTransaction) error
	UpdateAddonTransaction(ctx context.Context, txn *entity.AddonTransaction) error
	FindOneAddonTransaction(ctx context.Context, specs ...specification.Specification) (*entity.AddonTransaction, error)
}
