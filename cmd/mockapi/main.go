// cmd/mockapi/main.go
//
// Standalone implementation of the remote Fullsound API the storefront
// backend falls back from. Running it next to the storefront exercises the
// remote tier end to end; stopping it exercises the local fallback.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fullsound/fullsound/internal/config"
	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/utils"
)

// cartLine scopes cart contents per user, unlike the storefront's single
// local cart.
type cartLine struct {
	ID           uint `gorm:"primaryKey"`
	UserID       int  `gorm:"index"`
	BeatID       int
	Title        string
	Price        float64
	DisplayPrice string
	ImageRef     string
	Quantity     int
	CreatedAt    time.Time
}

type server struct {
	db *gorm.DB
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	db, err := initDatabase(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &server{db: db}
	r := gin.Default()
	s.routes(r)

	port := getPort(cfg)
	logrus.Infof("Starting mock API on port %s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start mock API: ", err)
	}
}

func getPort(cfg *config.Config) string {
	// Offset from the storefront port so both run side by side by default.
	if p, err := strconv.Atoi(cfg.Server.Port); err == nil {
		return strconv.Itoa(p + 1)
	}
	return "8081"
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// Open through lib/pq so the connection can be pinged before GORM
	// takes it over.
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logLevel := logger.Silent
	if cfg.LogLevel != "silent" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Beat{}, &models.User{}, &models.Order{}, &cartLine{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed the default catalog once.
	var count int64
	db.Model(&models.Beat{}).Count(&count)
	if count == 0 {
		if err := db.Create(models.DefaultCatalog()).Error; err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		logrus.Info("Seeded default catalog")
	}

	return db, nil
}

func (s *server) routes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
		auth.POST("/logout", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
		})
		auth.GET("/verify", s.verify)
	}

	r.GET("/beats", s.listBeats)
	r.GET("/beats/:id", s.getBeat)
	r.POST("/beats", s.createBeat)
	r.PUT("/beats/:id", s.updateBeat)
	r.DELETE("/beats/:id", s.deleteBeat)
	r.GET("/generos", s.genres)

	carrito := r.Group("/carrito")
	{
		carrito.GET("", s.getCart)
		carrito.DELETE("", s.clearCart)
		carrito.POST("/items", s.addCartItem)
		carrito.PUT("/items/:id", s.updateCartItem)
		carrito.DELETE("/items/:id", s.removeCartItem)
		carrito.POST("/checkout", s.checkout)
	}

	usuarios := r.Group("/usuarios")
	{
		usuarios.GET("/perfil", s.profile)
		usuarios.GET("", s.listUsers)
	}
}

// userID extracts the authenticated user, or 0 for anonymous carts.
func (s *server) userID(c *gin.Context) int {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0
	}
	claims, err := utils.ValidateJWT(parts[1])
	if err != nil {
		return 0
	}
	return claims.UserID
}

func (s *server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"correo"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Correo o contraseña incorrectos"})
		return
	}
	if err := user.CheckPassword(req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Correo o contraseña incorrectos"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Name, user.Email, string(user.Role), 24)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (s *server) register(c *gin.Context) {
	var req struct {
		Name     string `json:"nombre"`
		Email    string `json:"correo"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		ID:        int(time.Now().UnixMilli()),
		Name:      req.Name,
		Email:     req.Email,
		Role:      models.RoleForEmail(req.Email),
		CreatedAt: time.Now(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El correo ya está registrado"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (s *server) verify(c *gin.Context) {
	id := s.userID(c)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "valid": true})
}

func (s *server) listBeats(c *gin.Context) {
	query := s.db.Model(&models.Beat{})
	if genre := c.Query("genero"); genre != "" {
		query = query.Where("genre = ?", genre)
	}
	if artist := c.Query("artista"); artist != "" {
		query = query.Where("artist = ?", artist)
	}

	var beats []models.Beat
	if err := query.Order("id").Find(&beats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, beats)
}

func (s *server) getBeat(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var beat models.Beat
	if err := s.db.First(&beat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Beat no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, beat)
}

func (s *server) createBeat(c *gin.Context) {
	var beat models.Beat
	if err := c.ShouldBindJSON(&beat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	beat.ID = 0
	if beat.Price == 0 {
		beat.Price = models.NormalizePrice(beat.DisplayPrice)
	}
	if err := s.db.Create(&beat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	beat.ProductLink = "/producto/" + strconv.Itoa(beat.ID)
	s.db.Save(&beat)

	c.JSON(http.StatusCreated, beat)
}

func (s *server) updateBeat(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var beat models.Beat
	if err := s.db.First(&beat, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Beat no encontrado"})
		return
	}

	var patch models.Beat
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch.ID = id

	if err := s.db.Model(&beat).Updates(patch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, beat)
}

func (s *server) deleteBeat(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := s.db.Delete(&models.Beat{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *server) genres(c *gin.Context) {
	var genres []string
	if err := s.db.Model(&models.Beat{}).Distinct("genre").Order("genre").Pluck("genre", &genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (s *server) cartView(userID int) gin.H {
	var lines []cartLine
	s.db.Where("user_id = ?", userID).Order("created_at").Find(&lines)

	items := make([]models.CartItem, 0, len(lines))
	var total float64
	for _, l := range lines {
		items = append(items, models.CartItem{
			ID:           l.BeatID,
			Title:        l.Title,
			Price:        l.Price,
			DisplayPrice: l.DisplayPrice,
			ImageRef:     l.ImageRef,
			Quantity:     l.Quantity,
		})
		total += l.Price * float64(l.Quantity)
	}
	return gin.H{"items": items, "total": total}
}

func (s *server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, s.cartView(s.userID(c)))
}

func (s *server) addCartItem(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := s.userID(c)

	// Same idempotence rule as the storefront: one line per beat.
	var existing cartLine
	err := s.db.Where("user_id = ? AND beat_id = ?", userID, item.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		s.db.Create(&cartLine{
			UserID:       userID,
			BeatID:       item.ID,
			Title:        item.Title,
			Price:        item.Price,
			DisplayPrice: item.DisplayPrice,
			ImageRef:     item.ImageRef,
			Quantity:     qty,
		})
	}

	c.JSON(http.StatusOK, s.cartView(userID))
}

func (s *server) updateCartItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req struct {
		Quantity int `json:"cantidad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := s.userID(c)
	s.db.Model(&cartLine{}).
		Where("user_id = ? AND beat_id = ?", userID, id).
		Update("quantity", req.Quantity)

	c.JSON(http.StatusOK, s.cartView(userID))
}

func (s *server) removeCartItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	userID := s.userID(c)
	s.db.Where("user_id = ? AND beat_id = ?", userID, id).Delete(&cartLine{})
	c.JSON(http.StatusOK, s.cartView(userID))
}

func (s *server) clearCart(c *gin.Context) {
	s.db.Where("user_id = ?", s.userID(c)).Delete(&cartLine{})
	c.JSON(http.StatusOK, gin.H{"message": "Carrito vaciado"})
}

func (s *server) checkout(c *gin.Context) {
	var details models.JSONB
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := s.userID(c)
	view := s.cartView(userID)
	items := view["items"].([]models.CartItem)
	total := view["total"].(float64)

	order := models.Order{
		ID:              int(time.Now().UnixMilli()),
		Items:           items,
		Total:           total,
		PurchaseDetails: details,
		Timestamp:       time.Now(),
		Status:          models.OrderStatusPending,
	}
	if err := s.db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.db.Where("user_id = ?", userID).Delete(&cartLine{})
	c.JSON(http.StatusCreated, order)
}

func (s *server) profile(c *gin.Context) {
	id := s.userID(c)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Debes iniciar sesión"})
		return
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *server) listUsers(c *gin.Context) {
	var list []models.User
	if err := s.db.Order("id").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}
