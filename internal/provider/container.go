package provider

import (
	"github.com/dealbees/voucher-api/internal/cache"
	"github.com/dealbees/voucher-api/internal/config"
	"github.com/dealbees/voucher-api/internal/logger"
	"github.com/dealbees/voucher-api/internal/models"
	"github.com/dealbees/voucher-api/internal/queue"
	"github.com/dealbees/voucher-api/internal/repository"
	"github.com/dealbees/voucher-api/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	BrandRepo     repository.BrandRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	CouponRepo    repository.CouponRepository
	PromotionRepo repository.PromotionRepository
	OrderRepo     repository.OrderRepository
	LedgerRepo    repository.LedgerRepository

	// Services
	CartService   *service.CartService
	CouponService *service.CouponService
	OrderService  *service.OrderService
}

// NewContainer wires repositories and services on top of models.DB.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.LedgerRepo = repository.NewLedgerRepository(db)
}

func (c *Container) initServices() {
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.PromotionRepo, c.CouponRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CartRepo, c.OrderRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.PromotionRepo, c.LedgerRepo, c.CouponService, c.QueueClient, c.Config.Order)
}
