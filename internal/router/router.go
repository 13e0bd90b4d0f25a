package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/venturely/venturely/internal/handlers"
	"github.com/venturely/venturely/internal/middleware"
	"github.com/venturely/venturely/internal/storage"
	"github.com/venturely/venturely/internal/types"
)

type Options struct {
	Handler        *handlers.Handler
	Tokens         middleware.TokenVerifier
	Log            *logrus.Logger
	AllowedOrigins []string
	// UploadDir is served under /uploads when blobs are stored locally.
	UploadDir      string
	MaxUploadBytes int64
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if opts.Log != nil {
		r.Use(middleware.RequestLogger(opts.Log))
	}

	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	// cors.New panics on an empty origin list
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = types.AllowedOrigins("", "")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if opts.UploadDir != "" {
		r.Static(storage.URLPrefix, opts.UploadDir)
	}

	h := opts.Handler
	authenticated := middleware.AuthMiddleware(opts.Tokens)
	optional := middleware.OptionalAuthMiddleware(opts.Tokens)
	founderOnly := middleware.RequireRole(types.RoleFounder)
	investorOnly := middleware.RequireRole(types.RoleInvestor)

	api := r.Group("/api")
	{
		api.GET("", h.Root)
		api.GET("/health", h.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/login", h.Login)
			auth.GET("/me", authenticated, h.Me)
		}

		founder := api.Group("/founder")
		{
			// browsers cannot set headers on a websocket handshake
			founder.GET("/notifications/ws", middleware.QueryToken(), authenticated, founderOnly, h.NotificationStream)

			founder.Use(authenticated, founderOnly)
			founder.GET("/profile", h.GetFounderProfile)
			founder.POST("/profile", h.CreateFounderProfile)
			founder.PUT("/profile", h.UpdateFounderProfile)
			founder.GET("/notifications", h.ListFounderNotifications)
			founder.PUT("/notifications/:id/read", h.MarkNotificationRead)
		}

		investor := api.Group("/investor", authenticated, investorOnly)
		{
			investor.GET("/profile", h.GetInvestorProfile)
			investor.POST("/profile", h.CreateInvestorProfile)
			investor.PUT("/profile", h.UpdateInvestorProfile)
		}

		startups := api.Group("/startup", authenticated, founderOnly)
		{
			startups.GET("", h.ListStartups)
			startups.POST("", h.CreateStartup)
			startups.GET("/:id", h.GetStartup)
			startups.PUT("/:id", h.UpdateStartup)
		}

		pitches := api.Group("/pitch")
		{
			pitches.GET("", optional, h.ListPitches)
			pitches.POST("", authenticated, founderOnly, h.CreatePitch)
			pitches.GET("/saved", authenticated, investorOnly, h.ListSavedPitches)
			pitches.GET("/:id", optional, h.GetPitch)
			pitches.POST("/:id/save", authenticated, investorOnly, h.SavePitch)
			pitches.DELETE("/:id/save", authenticated, investorOnly, h.UnsavePitch)
		}

		files := api.Group("/file", authenticated)
		{
			files.GET("", h.ListFiles)
			files.POST("/upload", h.UploadFile)
		}
	}

	return r
}
