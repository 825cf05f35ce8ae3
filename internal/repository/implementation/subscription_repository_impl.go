package implementation

import (
	"context"
	"errors"

	"primoboost-be/internal/entity"
	"primoboost-be/internal/mapper"
	"primoboost-be/internal/model"
	"primoboost-be/internal/repository/contract"
	"primoboost-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubscriptionRepositoryImpl) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	var m model.SubscriptionPlan
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Credits"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PlanToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var models []*model.SubscriptionPlan
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Credits"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	plans := make([]*entity.SubscriptionPlan, 0, len(models))
	for _, m := range models {
		plans = append(plans, r.mapper.PlanToEntity(m))
	}
	return plans, nil
}

func (r *SubscriptionRepositoryImpl) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	m := r.mapper.SubscriptionToModel(sub)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*sub = *r.mapper.SubscriptionToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	m := r.mapper.SubscriptionToModel(sub)
	// Credits are managed through their own operations, not resaved here.
	m.Credits = nil
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	var m model.UserSubscription
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Credits"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SubscriptionToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error) {
	var models []*model.UserSubscription
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Credits"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	subs := make([]*entity.UserSubscription, 0, len(models))
	for _, m := range models {
		subs = append(subs, r.mapper.SubscriptionToEntity(m))
	}
	return subs, nil
}

func (r *SubscriptionRepositoryImpl) CreateCredits(ctx context.Context, credits []*entity.FeatureCredit) error {
	if len(credits) == 0 {
		return nil
	}
	models := make([]*model.FeatureCredit, 0, len(credits))
	for _, c := range credits {
		models = append(models, r.mapper.CreditToModel(c))
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*credits[i] = *r.mapper.CreditToEntity(m)
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateCredit(ctx context.Context, credit *entity.FeatureCredit) error {
	m := r.mapper.CreditToModel(credit)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*credit = *r.mapper.CreditToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindCreditsBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.FeatureCredit, error) {
	var models []*model.FeatureCredit
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	credits := make([]*entity.FeatureCredit, 0, len(models))
	for _, m := range models {
		credits = append(credits, r.mapper.CreditToEntity(m))
	}
	return credits, nil
}

func (r *SubscriptionRepositoryImpl) CreateAddonTransaction(ctx context.Context, txn *entity.AddonTransaction) error {
	m := r.mapper.AddonToModel(txn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*txn = *r.mapper.AddonToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateAddonTransaction(ctx context.Context, txn *entity.AddonTransaction) error {
	m := r.mapper.AddonToModel(txn)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*txn = *r.mapper.AddonToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOneAddonTransaction(ctx context.Context, specs ...specification.Specification) (*entity.AddonTransaction, error) {
	var m model.AddonTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AddonToEntity(&m), nil
}
