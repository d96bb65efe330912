// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fullsound/fullsound/internal/cart"
	"github.com/fullsound/fullsound/internal/catalog"
	"github.com/fullsound/fullsound/internal/config"
	"github.com/fullsound/fullsound/internal/handlers"
	"github.com/fullsound/fullsound/internal/middleware"
	"github.com/fullsound/fullsound/internal/orders"
	"github.com/fullsound/fullsound/internal/remote"
	"github.com/fullsound/fullsound/internal/session"
	"github.com/fullsound/fullsound/internal/storage"
	"github.com/fullsound/fullsound/internal/users"
	"github.com/fullsound/fullsound/internal/utils"
)

func Initialize(backend storage.Backend, cfg *config.Config) *gin.Engine {
	codec := storage.NewCodec(backend)

	// The remote client reads the bearer token from the same store the
	// session writes it to.
	var client *remote.Client
	if cfg.API.BaseURL != "" {
		client = remote.New(cfg.API.BaseURL, time.Duration(cfg.API.RequestTimeout)*time.Second, func() string {
			var token string
			codec.Read(storage.KeyToken, &token)
			return token
		})
	}

	// Initialize services
	local := catalog.NewLocalCatalog(codec)
	var remoteTier catalog.Catalog
	if client != nil {
		remoteTier = catalog.NewRemoteCatalog(client)
	}
	fallback := catalog.NewFallbackCatalog(remoteTier, local)

	orderService := orders.NewService(codec)
	cartStore := cart.NewStore(codec)
	cartService := cart.NewService(client, cartStore, orderService)
	sessionStore := session.NewStore(codec, client, cfg.JWT.TokenTTL)
	userService := users.NewService(codec, client)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessionStore)
	beatHandler := handlers.NewBeatHandler(fallback)
	cartHandler := handlers.NewCartHandler(cartService, fallback)
	userHandler := handlers.NewUserHandler(userService, orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Authentication routes
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/verify", authHandler.Verify)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// Catalog routes
	beats := r.Group("/beats")
	{
		beats.GET("", beatHandler.List)
		beats.GET("/:id", beatHandler.Get)

		// Admin CRUD
		protected := beats.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			protected.POST("", beatHandler.Create)
			protected.PUT("/:id", beatHandler.Update)
			protected.DELETE("/:id", beatHandler.Delete)
		}
	}

	r.GET("/generos", beatHandler.Genres)

	// Cart routes
	carrito := r.Group("/carrito")
	{
		carrito.GET("", cartHandler.Get)
		carrito.DELETE("", cartHandler.Clear)
		carrito.POST("/items", cartHandler.AddItem)
		carrito.PUT("/items/:id", cartHandler.UpdateItem)
		carrito.DELETE("/items/:id", cartHandler.RemoveItem)
		carrito.POST("/checkout", cartHandler.Checkout)
	}

	// User routes
	usuarios := r.Group("/usuarios")
	usuarios.Use(middleware.AuthRequired())
	{
		usuarios.GET("/perfil", userHandler.Profile)
		usuarios.PUT("/perfil", userHandler.UpdateProfile)
		usuarios.PUT("/cambiar-password", userHandler.ChangePassword)

		admin := usuarios.Group("")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("", userHandler.List)
			admin.GET("/:id", userHandler.Get)
			admin.PUT("/:id", userHandler.Update)
			admin.DELETE("/:id", userHandler.Delete)
		}
	}

	// Local order log (admin)
	ordenes := r.Group("/ordenes")
	ordenes.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		ordenes.GET("", userHandler.Orders)
	}

	return r
}
