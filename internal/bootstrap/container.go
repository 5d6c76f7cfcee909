package bootstrap

import (
	"context"
	"log"

	"marketplace-be/internal/config"
	"marketplace-be/internal/controller"
	"marketplace-be/internal/pkg/logger"
	"marketplace-be/internal/pkg/mailer"
	"marketplace-be/internal/repository/unitofwork"
	"marketplace-be/internal/service"
	"marketplace-be/pkg/earnings"
	"marketplace-be/pkg/gateway"
	pkgNats "marketplace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const notificationTopic = "customer-notifications"

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	OrderController  controller.IOrderController
	ReturnController controller.IReturnController
	SellerController controller.ISellerController
	AdminController  controller.IAdminController
	CronController   controller.ICronController

	// Background services, started by main.go
	ConsumerService service.IConsumerService
	AuditService    *service.AuditService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process notification queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS event bus
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	// Redis backs the sweep lock
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	paymentGateway := gateway.NewMidtransGateway(
		cfg.Gateway.ServerKey,
		cfg.Gateway.IsProduction,
		cfg.Gateway.Timeout,
	)

	// A nil interface, not an interface holding a nil pointer, so the
	// services' nil checks work when NATS is down.
	var eventBus service.EventBus
	if natsPub != nil {
		eventBus = natsPub
	}

	// Services
	publisherService := service.NewPublisherService(pubSub, notificationTopic)
	consumerService := service.NewConsumerService(pubSub, notificationTopic, emailService, sysLogger)

	authService := service.NewAuthService(uowFactory)
	orderService := service.NewOrderService(uowFactory, paymentGateway, eventBus, publisherService, cfg.Returns, sysLogger)
	returnService := service.NewReturnService(uowFactory, eventBus, publisherService, sysLogger)
	refundService := service.NewRefundService(uowFactory, paymentGateway, eventBus, publisherService, cfg.Returns, sysLogger)
	sellerService := service.NewSellerService(uowFactory)

	engine := earnings.NewEngine(sysLogger)
	notifier := service.NewSettlementNotifier(eventBus, sysLogger)
	sweeper := earnings.NewSweeper(uowFactory, engine, notifier, sysLogger)
	settlementService := service.NewSettlementService(sweeper, rdb, sysLogger)

	var auditService *service.AuditService
	if natsSub != nil {
		auditService = service.NewAuditService(natsSub, sysLogger)
	}

	return &Container{
		AuthController:   controller.NewAuthController(authService),
		OrderController:  controller.NewOrderController(orderService),
		ReturnController: controller.NewReturnController(returnService),
		SellerController: controller.NewSellerController(sellerService),
		AdminController:  controller.NewAdminController(orderService, returnService, refundService, settlementService),
		CronController:   controller.NewCronController(settlementService, cfg.App.CronKey),
		ConsumerService:  consumerService,
		AuditService:     auditService,
		Logger:           sysLogger,
	}
}
