// Package web provides the HTTP server for urban-explorer: routing,
// sessions, localization and background job scheduling.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"

	"urban-explorer/config"
	"urban-explorer/logger"
	"urban-explorer/storage"
	"urban-explorer/util/common"
	"urban-explorer/util/random"
	"urban-explorer/web/controller"
	"urban-explorer/web/job"
	"urban-explorer/web/locale"
	"urban-explorer/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

//go:embed translation/*
var i18nFS embed.FS

// Server wires the services, controllers and scheduled jobs around one
// database handle and one blob store.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	db    *gorm.DB
	blobs *storage.Disk

	settingService *service.SettingService
	userService    *service.UserService
	spotService    *service.SpotService
	serverService  *service.ServerService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server around the shared database handle and blob
// store opened in main.
func NewServer(db *gorm.DB, blobs *storage.Disk) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		db:     db,
		blobs:  blobs,
		ctx:    ctx,
		cancel: cancel,
	}
	s.settingService = service.NewSettingService(db)
	s.userService = service.NewUserService(db, s.settingService)
	s.spotService = service.NewSpotService(db, blobs)
	s.serverService = service.NewServerService(blobs)
	return s
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.Seq(32)
	}
	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions(config.GetName(), store))

	// gzip, excluding uploads which are already-compressed image bytes
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/uploads/"}),
	))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	g := engine.Group("/")
	controller.NewAuthController(g, s.userService)
	controller.NewSpotController(g, s.spotService)
	controller.NewUploadController(g, s.blobs)
	controller.NewSettingController(g, s.settingService)
	controller.NewUserAdminController(g, s.userService)
	controller.NewServerController(g, s.serverService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewClearLogsJob())
	s.cron.AddJob("@hourly", job.NewCheckpointJob(s.db))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), config.GetPort())
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
