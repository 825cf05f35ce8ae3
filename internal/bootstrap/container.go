package bootstrap

import (
	"context"
	"log"

	"primoboost-be/internal/config"
	"primoboost-be/internal/controller"
	"primoboost-be/internal/pkg/logger"
	"primoboost-be/internal/pkg/mailer"
	"primoboost-be/internal/repository/memory"
	"primoboost-be/internal/repository/unitofwork"
	"primoboost-be/internal/service"
	"primoboost-be/internal/shell"
	"primoboost-be/internal/websocket"
	"primoboost-be/pkg/llm"
	"primoboost-be/pkg/llm/openrouter"

	pkgNats "primoboost-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ChatbotController controller.IChatbotController
	PaymentController controller.IPaymentController
	PlanController    controller.IPlanController
	ShellController   controller.IShellController

	// Background services (main.go starts these)
	ShellService service.IShellService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 3. Providers
	var llmProvider llm.Provider
	if cfg.Ai.ProxyBaseURL != "" {
		llmProvider = openrouter.NewProvider(cfg.Ai.ProxyBaseURL, cfg.Ai.ProxyAPIKey, cfg.Ai.Model)
		log.Printf("[INFO] Using remote chat provider: %s", cfg.Ai.Model)
	} else {
		log.Printf("[INFO] No remote chat provider configured, local matching only")
	}

	// 4. Services
	purchasePublisher := service.NewPublisherService(cfg.Topics.PurchaseCompleted, pubSub)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	chatbotService := service.NewChatbotService(uowFactory, llmProvider, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, natsPub, purchasePublisher)
	planService := service.NewPlanService(uowFactory)

	auditService := service.NewAuditService(natsSub, sysLogger)
	if err := auditService.Start(); err != nil {
		log.Printf("[WARN] Audit trail unavailable: %v", err)
	}

	shellSessionRepo := memory.NewShellSessionRepository()
	shellService := service.NewShellService(
		uowFactory,
		shellSessionRepo,
		wsHub,
		pubSub,
		cfg.Topics.PurchaseCompleted,
		shell.Options{},
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ChatbotController: controller.NewChatbotController(chatbotService),
		PaymentController: controller.NewPaymentController(paymentService),
		PlanController:    controller.NewPlanController(planService),
		ShellController:   controller.NewShellController(shellService),

		ShellService: shellService,
		WebSocketHub: wsHub,
	}
}
