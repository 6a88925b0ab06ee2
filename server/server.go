package server

import (
	"net/http"

	"github.com/drezzup/storefront/pkg/auth"
	"github.com/drezzup/storefront/pkg/config"
	"github.com/drezzup/storefront/pkg/removebg"
	"github.com/drezzup/storefront/pkg/repository"
	"github.com/drezzup/storefront/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	store    *repository.Store
	auth     *auth.Manager
	uploader *storage.Uploader
	removeBG *removebg.Client
	router   *gin.Engine
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	store *repository.Store,
	authManager *auth.Manager,
	uploader *storage.Uploader,
	removeBG *removebg.Client,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:   cfg,
		logger:   logger,
		store:    store,
		auth:     authManager,
		uploader: uploader,
		removeBG: removeBG,
		router:   router,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stored product images (GridFS target)
	s.router.GET("/images/:name", s.serveImage)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		// Storefront
		v1.GET("/products", s.listProducts)
		v1.POST("/orders", s.createOrder)

		// Back office
		admin := v1.Group("/admin")
		admin.POST("/login", s.login)

		guarded := admin.Group("")
		guarded.Use(s.authRequired())
		{
			guarded.POST("/logout", s.logout)

			guarded.GET("/orders", s.listOrders)
			guarded.GET("/orders/stats", s.orderStats)
			guarded.GET("/orders/stream", s.streamOrders)
			guarded.PUT("/orders/:id/status", s.updateOrderStatus)
			guarded.DELETE("/orders/:id", s.deleteOrder)

			guarded.GET("/products/next-id", s.nextProductID)
			guarded.POST("/products", s.createProduct)
			guarded.DELETE("/products", s.deleteProduct)
		}
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.logger.Info("Server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
