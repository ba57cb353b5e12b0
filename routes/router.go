package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careerlift/resumeaudit/config"
	"github.com/careerlift/resumeaudit/controllers"
	"github.com/careerlift/resumeaudit/middleware"
	"github.com/careerlift/resumeaudit/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	if utils.Logger != nil {
		r.Use(utils.GinLogger(utils.Logger))
		r.Use(utils.GinRecovery(utils.Logger))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        24 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")

	r.GET("/", func(ctx *gin.Context) {
		ctx.File("./static/index.html")
	})

	// The hosted checkout redirects the buyer back here with
	// ?session_id=... in the query string.
	r.GET("/upload", func(ctx *gin.Context) {
		ctx.File("./static/upload.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	checkoutController := controllers.NewCheckoutController(db)
	uploadController := controllers.NewUploadController(db)
	counterController := controllers.NewCounterController(db)

	commerce := r.Group("")
	commerce.Use(middleware.RateLimit())
	commerce.POST("/checkout", checkoutController.Create)
	commerce.POST("/upload", uploadController.Upload)

	r.GET("/submission-counter", counterController.Status)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Fail(ctx, http.StatusNotFound, "not found")
	})

	return r
}
