package mapper

import (
	"primoboost-be/internal/entity"
	"primoboost-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	credits := make([]entity.PlanCredit, 0, len(p.Credits))
	for _, c := range p.Credits {
		credits = append(credits, entity.PlanCredit{
			Id:         c.Id,
			PlanId:     c.PlanId,
			FeatureKey: c.FeatureKey,
			Total:      c.Total,
		})
	}
	return &entity.SubscriptionPlan{
		Id:              p.Id,
		Name:            p.Name,
		Slug:            p.Slug,
		Tagline:         p.Tagline,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		DurationDays:    p.DurationDays,
		IsMostPopular:   p.IsMostPopular,
		IsActive:        p.IsActive,
		SortOrder:       p.SortOrder,
		Credits:         credits,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	credits := make([]*model.PlanCredit, 0, len(p.Credits))
	for _, c := range p.Credits {
		credits = append(credits, &model.PlanCredit{
			Id:         c.Id,
			PlanId:     c.PlanId,
			FeatureKey: c.FeatureKey,
			Total:      c.Total,
		})
	}
	return &model.SubscriptionPlan{
		Id:              p.Id,
		Name:            p.Name,
		Slug:            p.Slug,
		Tagline:         p.Tagline,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		DurationDays:    p.DurationDays,
		IsMostPopular:   p.IsMostPopular,
		IsActive:        p.IsActive,
		SortOrder:       p.SortOrder,
		Credits:         credits,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	credits := make([]entity.FeatureCredit, 0, len(s.Credits))
	for _, c := range s.Credits {
		credits = append(credits, entity.FeatureCredit{
			Id:             c.Id,
			SubscriptionId: c.SubscriptionId,
			FeatureKey:     c.FeatureKey,
			Used:           c.Used,
			Total:          c.Total,
		})
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                entity.SubscriptionStatus(s.Status),
		PaymentStatus:         entity.PaymentStatus(s.PaymentStatus),
		StartDate:             s.StartDate,
		EndDate:               s.EndDate,
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
		Credits:               credits,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	credits := make([]*model.FeatureCredit, 0, len(s.Credits))
	for _, c := range s.Credits {
		credits = append(credits, &model.FeatureCredit{
			Id:             c.Id,
			SubscriptionId: c.SubscriptionId,
			FeatureKey:     c.FeatureKey,
			Used:           c.Used,
			Total:          c.Total,
		})
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                string(s.Status),
		PaymentStatus:         string(s.PaymentStatus),
		StartDate:             s.StartDate,
		EndDate:               s.EndDate,
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
		Credits:               credits,
	}
}

func (m *SubscriptionMapper) CreditToEntity(c *model.FeatureCredit) *entity.FeatureCredit {
	if c == nil {
		return nil
	}
	return &entity.FeatureCredit{
		Id:             c.Id,
		SubscriptionId: c.SubscriptionId,
		FeatureKey:     c.FeatureKey,
		Used:           c.Used,
		Total:          c.Total,
	}
}

func (m *SubscriptionMapper) CreditToModel(c *entity.FeatureCredit) *model.FeatureCredit {
	if c == nil {
		return nil
	}
	return &model.FeatureCredit{
		Id:             c.Id,
		SubscriptionId: c.SubscriptionId,
		FeatureKey:     c.FeatureKey,
		Used:           c.Used,
		Total:          c.Total,
	}
}

func (m *SubscriptionMapper) AddonToEntity(a *model.AddonTransaction) *entity.AddonTransaction {
	if a == nil {
		return nil
	}
	return &entity.AddonTransaction{
		Id:            a.Id,
		UserId:        a.UserId,
		FeatureKey:    a.FeatureKey,
		Credits:       a.Credits,
		Amount:        a.Amount,
		PaymentStatus: entity.PaymentStatus(a.PaymentStatus),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (m *SubscriptionMapper) AddonToModel(a *entity.AddonTransaction) *model.AddonTransaction {
	if a == nil {
		return nil
	}
	return &model.AddonTransaction{
		Id:            a.Id,
		UserId:        a.UserId,
		FeatureKey:    a.FeatureKey,
		Credits:       a.Credits,
		Amount:        a.Amount,
		PaymentStatus: string(a.PaymentStatus),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
