package service

import (
	"context"

	"primoboost-be/internal/dto"
	"primoboost-be/internal/entity"
	"primoboost-be/internal/repository/specification"
	"primoboost-be/internal/repository/unitofwork"
)

type IPlanService interface {
	GetAllActivePlans(ctx context.Context) ([]*dto.PlanResponse, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) IPlanService {
	return &planService{
		uowFactory: uowFactory,
	}
}

func (s *planService) GetAllActivePlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.Filter("is_active", true),
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, toPlanResponse(p))
	}
	return res, nil
}

func toPlanResponse(p *entity.SubscriptionPlan) *dto.PlanResponse {
	credits := make([]dto.PlanCreditDTO, 0, len(p.Credits))
	for _, c := range p.Credits {
		credits = append(credits, dto.PlanCreditDTO{
			FeatureKey: c.FeatureKey,
			Total:      c.Total,
		})
	}
	return &dto.PlanResponse{
		Id:              p.Id,
		Name:            p.Name,
		Slug:            p.Slug,
		Tagline:         p.Tagline,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		DurationDays:    p.DurationDays,
		IsMostPopular:   p.IsMostPopular,
		Credits:         credits,
	}
}
