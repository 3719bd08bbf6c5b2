package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"

	"photoserver/auth"
	"photoserver/config"
	"photoserver/db"
	"photoserver/handlers"
	"photoserver/models"
	"photoserver/storage"
	"photoserver/utils"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	storage.Init()
	models.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/media"})))
	}

	// Auth handlers
	router.POST("/api/auth/register", handlers.UserRegister)
	router.POST("/api/auth/login", handlers.UserLogin)
	// Everything below requires an authenticated identity
	authRouter := &auth.Router{Base: router}
	authRouter.POST("/api/auth/logout", handlers.UserLogout)
	// Photo handlers
	authRouter.POST("/api/photos", handlers.PhotoUpload)
	authRouter.GET("/api/photos", handlers.PhotoList)
	authRouter.GET("/api/photos/:id", handlers.PhotoGet)
	authRouter.DELETE("/api/photos/:id", handlers.PhotoDelete)
	authRouter.POST("/api/photos/share", handlers.PhotoShare)
	// Raw media - access checks are done inside the handler
	authRouter.GET("/api/media/*path", handlers.MediaFetch)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
