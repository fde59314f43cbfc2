package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/campusboard/core/internal/adapters/clubsapi"
	httpHandlers "github.com/campusboard/core/internal/adapters/http"
	"github.com/campusboard/core/internal/adapters/notifyapi"
	"github.com/campusboard/core/internal/adapters/repository"
	"github.com/campusboard/core/internal/application/services"
	"github.com/campusboard/core/internal/domain/examtable"
	"github.com/campusboard/core/internal/domain/schedule"
	"github.com/campusboard/core/internal/infrastructure/config"
	"github.com/campusboard/core/internal/infrastructure/database"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
	cron   *cron.Cron
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. db is nil unless the postgres storage
// driver is configured.
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	// Select the KV store per the configured storage driver
	kv, err := newKVStore(cfg, db)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	eventRepo := repository.NewUserEventRepository(kv)
	prefRepo := repository.NewPreferenceRepository(kv)
	courseRepo := repository.NewCourseRepository(kv)

	// Initialize backend clients
	clubsClient := clubsapi.New(cfg.Clubs.BaseURL, cfg.Clubs.Timeout, appLogger)
	notifyClient := notifyapi.New(cfg.Notify.BaseURL, cfg.Notify.Timeout, appLogger)

	// Initialize services
	genCfg := schedule.GeneratorConfig{
		HorizonWeeks: cfg.Calendar.HorizonWeeks,
		CountBased:   cfg.Calendar.CountBasedRecurrence,
	}
	exams := examtable.New()
	calendarService := services.NewCalendarService(eventRepo, clubsClient, notifyClient, genCfg, cfg.Calendar.DefaultLanguage, appLogger)
	preferenceService := services.NewPreferenceService(prefRepo, appLogger)
	clubService := services.NewClubService(clubsClient, clubsapi.FallbackClubs(), appLogger)
	examService := services.NewExamService(exams, appLogger)
	courseService := services.NewCourseService(courseRepo, exams, appLogger)
	notificationService := services.NewNotificationService(notifyClient, appLogger)

	// Initialize handlers
	calendarHandler := httpHandlers.NewCalendarHandler(calendarService, appLogger)
	preferenceHandler := httpHandlers.NewPreferenceHandler(preferenceService, appLogger)
	clubHandler := httpHandlers.NewClubHandler(clubService, appLogger)
	examHandler := httpHandlers.NewExamHandler(examService, appLogger)
	courseHandler := httpHandlers.NewCourseHandler(courseService, appLogger)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService, appLogger)

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(calendarHandler, preferenceHandler, clubHandler, examHandler, courseHandler, notificationHandler)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	// Periodic club-directory refresh keeps the fallback cache warm
	if err := server.setupCron(clubService); err != nil {
		return nil, err
	}

	return server, nil
}

func newKVStore(cfg *config.Config, db *database.DB) (ports.KVStore, error) {
	switch cfg.Storage.Driver {
	case "file":
		return repository.NewFileKVStore(cfg.Storage.Dir)
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres storage driver requires a database connection")
		}
		return repository.NewPostgresKVStore(db.DB), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	calendarHandler *httpHandlers.CalendarHandler,
	preferenceHandler *httpHandlers.PreferenceHandler,
	clubHandler *httpHandlers.ClubHandler,
	examHandler *httpHandlers.ExamHandler,
	courseHandler *httpHandlers.CourseHandler,
	notificationHandler *httpHandlers.NotificationHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes (authenticated)
	v1 := s.echo.Group("/api/v1", s.identityMiddleware())

	// Calendar routes
	calendarGroup := v1.Group("/calendar")
	calendarGroup.GET("", calendarHandler.GetCollection)
	calendarGroup.GET("/month", calendarHandler.GetMonthGrid)
	calendarGroup.GET("/export.ics", calendarHandler.ExportICS)
	calendarGroup.POST("/events", calendarHandler.CreateEvent)
	calendarGroup.PUT("/events/:id", calendarHandler.UpdateEvent)
	calendarGroup.DELETE("/events/:id", calendarHandler.DeleteEvent)

	// Preference routes
	prefGroup := v1.Group("/preferences")
	prefGroup.GET("/notifications", preferenceHandler.GetPreferences)
	prefGroup.PUT("/notifications", preferenceHandler.UpdatePreferences)

	// Club routes
	clubGroup := v1.Group("/clubs")
	clubGroup.GET("", clubHandler.ListClubs)
	clubGroup.GET("/memberships", clubHandler.GetMemberships)
	clubGroup.POST("/submit", clubHandler.SubmitClub)
	clubGroup.POST("/:id/join", clubHandler.JoinClub)
	clubGroup.DELETE("/:id/leave", clubHandler.LeaveClub)
	clubGroup.PATCH("/:id/calendar", clubHandler.SetCalendarSync)

	// Exam routes
	v1.GET("/exams/:code", examHandler.LookupExam)

	// Course routes
	courseGroup := v1.Group("/courses")
	courseGroup.GET("", courseHandler.ListCourses)
	courseGroup.POST("", courseHandler.SaveCourse)
	courseGroup.DELETE("/:code", courseHandler.RemoveCourse)
	courseGroup.POST("/:code/complete", courseHandler.CompleteCourse)

	// Notification routes
	notifGroup := v1.Group("/notifications")
	notifGroup.POST("/schedule", notificationHandler.ScheduleReminder)
	notifGroup.GET("/events", notificationHandler.ListScheduled)
	notifGroup.DELETE("/events/:id", notificationHandler.CancelReminder)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// setupCron schedules the periodic club-directory refresh.
func (s *Server) setupCron(clubService *services.ClubService) error {
	c := cron.New()
	_, err := c.AddFunc(s.config.Calendar.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := clubService.RefreshDirectory(ctx); err != nil {
			s.logger.Warn("Scheduled directory refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.config.Calendar.RefreshSchedule, err)
	}
	s.cron = c
	return nil
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check (postgres storage driver only)
	if s.db != nil {
		if err := s.db.HealthCheck(); err != nil {
			status = "error"
			checks["database"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status": "ok",
				"stats":  s.db.GetConnectionInfo(),
			}
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status": "ok",
			"driver": s.config.Storage.Driver,
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  "1.21",
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": "database_not_ready",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server and the background cron.
func (s *Server) Start(address string) error {
	s.cron.Start()
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(*validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
