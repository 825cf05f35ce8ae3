package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"primoboost-be/internal/dto"
	"primoboost-be/internal/entity"
	"primoboost-be/internal/repository/specification"
	"primoboost-be/internal/repository/unitofwork"

	"primoboost-be/pkg/events"
	pkgNats "primoboost-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Add-on order ids get this prefix so the webhook can tell the two purchase
// paths apart.
const addonOrderPrefix = "addon-"

type IPaymentService interface {
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	AddonCheckout(ctx context.Context, userId uuid.UUID, req *dto.AddonCheckoutRequest) (*dto.AddonCheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	GetUserSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
}

type paymentService struct {
	uowFactory        unitofwork.RepositoryFactory
	eventPublisher    *pkgNats.Publisher
	purchasePublisher IPublisherService
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pkgNats.Publisher, purchasePublisher IPublisherService) IPaymentService {
	return &paymentService{
		uowFactory:        uowFactory,
		eventPublisher:    eventPublisher,
		purchasePublisher: purchasePublisher,
	}
}

func newSnapClient() snap.Client {
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)
	return sClient
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, errors.New("plan not found")
	}

	subId := uuid.New()
	sub := &entity.UserSubscription{
		Id:            subId,
		UserId:        userId,
		PlanId:        plan.Id,
		Status:        entity.SubscriptionStatusInactive,
		PaymentStatus: entity.PaymentStatusPending,
		StartDate:     time.Now(),
		EndDate:       time.Now().AddDate(0, 0, plan.DurationDays),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	// External call stays outside the DB transaction
	sClient := newSnapClient()
	frontendURL := os.Getenv("FRONTEND_URL")

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  subId.String(),
			GrossAmt: int64(plan.Price),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/?payment=success", frontendURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		SubscriptionId:  subId,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) AddonCheckout(ctx context.Context, userId uuid.UUID, req *dto.AddonCheckoutRequest) (*dto.AddonCheckoutResponse, error) {
	price, ok := addonPrice(req.FeatureKey)
	if !ok {
		return nil, errors.New("unknown add-on feature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	txn := &entity.AddonTransaction{
		Id:            uuid.New(),
		UserId:        userId,
		FeatureKey:    req.FeatureKey,
		Credits:       req.Credits,
		Amount:        price * float64(req.Credits),
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uow.SubscriptionRepository().CreateAddonTransaction(ctx, txn); err != nil {
		return nil, err
	}

	sClient := newSnapClient()
	frontendURL := os.Getenv("FRONTEND_URL")

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  addonOrderPrefix + txn.Id.String(),
			GrossAmt: int64(txn.Amount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/?payment=success", frontendURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.FeatureKey,
				Price: int64(price),
				Qty:   int32(req.Credits),
				Name:  fmt.Sprintf("%s add-on credit", req.FeatureKey),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.AddonCheckoutResponse{
		TransactionId:   txn.Id,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func addonPrice(featureKey string) (float64, bool) {
	switch featureKey {
	case entity.FeatureScoreChecker:
		return 19, true
	case entity.FeatureOptimizer:
		return 49, true
	case entity.FeatureGuidedBuilder:
		return 99, true
	case entity.FeatureLinkedInGenerator:
		return 29, true
	default:
		return 0, false
	}
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		fmt.Println("[WEBHOOK ERROR] MIDTRANS_SERVER_KEY not configured")
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))

	if req.SignatureKey != expectedSignature {
		fmt.Printf("[WEBHOOK ERROR] Signature mismatch for OrderId=%s\n", req.OrderId)
		return fmt.Errorf("invalid signature")
	}

	if strings.HasPrefix(req.OrderId, addonOrderPrefix) {
		return s.handleAddonNotification(ctx, req)
	}
	return s.handleSubscriptionNotification(ctx, req)
}

func (s *paymentService) handleSubscriptionNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	subId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("subscription not found")
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if sub.PaymentStatus == entity.PaymentStatusPaid {
			// Midtrans retries notifications; activation must stay idempotent.
			return nil
		}
		return s.activateSubscription(ctx, uow, sub)
	case "deny", "cancel", "expire":
		sub.Status = entity.SubscriptionStatusInactive
		sub.PaymentStatus = entity.PaymentStatusFailed
		sub.UpdatedAt = time.Now()
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return err
		}
		return uow.Commit()
	default:
		return nil
	}
}

// activateSubscription flips the subscription active and grants the plan's
// feature credits, then fans the purchase out to the shell layer and the
// event bus.
func (s *paymentService) activateSubscription(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.UserSubscription) error {
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("plan not found for subscription %s", sub.Id)
	}

	sub.Status = entity.SubscriptionStatusActive
	sub.PaymentStatus = entity.PaymentStatusPaid
	sub.StartDate = time.Now()
	sub.EndDate = time.Now().AddDate(0, 0, plan.DurationDays)
	sub.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	credits := make([]*entity.FeatureCredit, 0, len(plan.Credits))
	for _, c := range plan.Credits {
		credits = append(credits, &entity.FeatureCredit{
			Id:             uuid.New(),
			SubscriptionId: sub.Id,
			FeatureKey:     c.FeatureKey,
			Used:           0,
			Total:          c.Total,
		})
	}
	if err := uow.SubscriptionRepository().CreateCredits(ctx, credits); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishPurchaseCompleted(ctx, dto.PurchaseCompletedMessage{
		UserId: sub.UserId,
		Kind:   dto.PurchaseKindSubscription,
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeSubscriptionActivated,
			Data: map[string]interface{}{
				"user_id":         sub.UserId,
				"subscription_id": sub.Id,
				"plan_id":         plan.Id,
				"plan_name":       plan.Name,
				"amount":          plan.Price,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeSubscriptionActivated, err)
		}
	}

	return nil
}

func (s *paymentService) handleAddonNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	txnId, err := uuid.Parse(strings.TrimPrefix(req.OrderId, addonOrderPrefix))
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	txn, err := uow.SubscriptionRepository().FindOneAddonTransaction(ctx, specification.ByID{ID: txnId})
	if err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("addon transaction not found")
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if txn.PaymentStatus == entity.PaymentStatusPaid {
			return nil
		}
		return s.grantAddonCredits(ctx, uow, txn)
	case "deny", "cancel", "expire":
		txn.PaymentStatus = entity.PaymentStatusFailed
		txn.UpdatedAt = time.Now()
		if err := uow.SubscriptionRepository().UpdateAddonTransaction(ctx, txn); err != nil {
			return err
		}
		return uow.Commit()
	default:
		return nil
	}
}

// grantAddonCredits tops up the credit counter on the user's active
// subscription, or creates a fresh counter when the feature has none yet.
func (s *paymentService) grantAddonCredits(ctx context.Context, uow unitofwork.UnitOfWork, txn *entity.AddonTransaction) error {
	txn.PaymentStatus = entity.PaymentStatusPaid
	txn.UpdatedAt = time.Now()
	if err := uow.SubscriptionRepository().UpdateAddonTransaction(ctx, txn); err != nil {
		return err
	}

	sub, err := s.findActiveSubscription(ctx, uow, txn.UserId)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("no active subscription for user %s", txn.UserId)
	}

	var existing *entity.FeatureCredit
	for i := range sub.Credits {
		if sub.Credits[i].FeatureKey == txn.FeatureKey {
			existing = &sub.Credits[i]
			break
		}
	}

	if existing != nil {
		existing.Total += txn.Credits
		if err := uow.SubscriptionRepository().UpdateCredit(ctx, existing); err != nil {
			return err
		}
	} else {
		credit := &entity.FeatureCredit{
			Id:             uuid.New(),
			SubscriptionId: sub.Id,
			FeatureKey:     txn.FeatureKey,
			Used:           0,
			Total:          txn.Credits,
		}
		if err := uow.SubscriptionRepository().CreateCredits(ctx, []*entity.FeatureCredit{credit}); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishPurchaseCompleted(ctx, dto.PurchaseCompletedMessage{
		UserId:     txn.UserId,
		Kind:       dto.PurchaseKindAddon,
		FeatureKey: txn.FeatureKey,
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeAddonCreditsGranted,
			Data: map[string]interface{}{
				"user_id":     txn.UserId,
				"feature_key": txn.FeatureKey,
				"credits":     txn.Credits,
				"amount":      txn.Amount,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeAddonCreditsGranted, err)
		}
	}

	return nil
}

func (s *paymentService) publishPurchaseCompleted(ctx context.Context, msg dto.PurchaseCompletedMessage) {
	if s.purchasePublisher == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		fmt.Printf("[WARN] Failed to marshal purchase message: %v\n", err)
		return
	}
	if err := s.purchasePublisher.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish purchase message: %v\n", err)
	}
}

func (s *paymentService) findActiveSubscription(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.UserSubscription, error) {
	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.Status == entity.SubscriptionStatusActive && time.Now().Before(sub.EndDate) {
			return sub, nil
		}
	}
	return nil, nil
}

func (s *paymentService) GetUserSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := s.findActiveSubscription(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}

	credits := make([]dto.FeatureCreditDTO, 0, len(sub.Credits))
	for _, c := range sub.Credits {
		credits = append(credits, dto.FeatureCreditDTO{
			FeatureKey: c.FeatureKey,
			Used:       c.Used,
			Total:      c.Total,
		})
	}

	res := &dto.SubscriptionResponse{
		Id:        sub.Id,
		PlanId:    sub.PlanId,
		Status:    string(sub.Status),
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
		Credits:   credits,
	}
	if plan != nil {
		res.PlanName = plan.Name
	}
	return res, nil
}
