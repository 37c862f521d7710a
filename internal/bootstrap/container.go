package bootstrap

import (
	"log"

	"subscription-be/internal/config"
	"subscription-be/internal/controller"
	"subscription-be/internal/pkg/logger"
	"subscription-be/internal/repository/unitofwork"
	"subscription-be/internal/service"
	"subscription-be/pkg/billing"

	pktNats "subscription-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const billingAuditTopic = "billing.events"

type Container struct {
	// Controllers
	SubscriptionController controller.ISubscriptionController
	WebhookController      controller.IWebhookController
	HealthController       controller.IHealthController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event buses
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Billing gateway
	billingGateway := billing.NewStripeGateway(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)

	// 4. Services
	auditRecorder := service.NewBillingAuditRecorder(billingAuditTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, billingAuditTopic, uowFactory)

	planService := service.NewPlanService(uowFactory)

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}
	subscriptionService := service.NewSubscriptionService(
		uowFactory,
		planService,
		billingGateway,
		eventPublisher,
		auditRecorder,
		sysLogger,
		cfg.Stripe.TrialDays,
	)

	// 5. Controllers
	return &Container{
		SubscriptionController: controller.NewSubscriptionController(subscriptionService),
		WebhookController:      controller.NewWebhookController(subscriptionService),
		HealthController:       controller.NewHealthController(db),
		ConsumerService:        consumerService,
		Logger:                 sysLogger,
	}
}
