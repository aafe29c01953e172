package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/client"
	"taskboard-api/internal/database"
	"taskboard-api/internal/handler"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger

	Metrics *metrics.Metrics
	// Gatherer backs /metrics. Nil serves the default registry.
	Gatherer prometheus.Gatherer

	BasePath       string
	Tokens         *auth.TokenManager
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter

	// S3Client is nil when uploads are not configured
	S3Client      client.S3ClientInterface
	Notifications client.NotificationClient
	Hub           *realtime.Hub
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Logger)
	}
	if cfg.Notifications == nil {
		cfg.Notifications = client.NewNoOpNotificationClient()
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	metricsHandler := gin.WrapH(promhttp.Handler())
	if cfg.Gatherer != nil {
		metricsHandler = gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	health := healthHandler(cfg.DB)

	r.GET("/metrics", metricsHandler)
	r.GET("/health", health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	workspaceRepo := repository.NewWorkspaceRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	listRepo := repository.NewListRepository(cfg.DB)
	cardRepo := repository.NewCardRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	actionRepo := repository.NewActionRepository(cfg.DB)
	eventRepo := repository.NewCalendarEventRepository(cfg.DB)
	blacklist := repository.NewTokenBlacklist(cfg.Redis)

	var publisher service.ActionPublisher
	if cfg.Hub != nil {
		publisher = cfg.Hub
	}

	// Initialize services
	m, log := cfg.Metrics, cfg.Logger
	authService := service.NewAuthService(userRepo, cfg.Tokens, blacklist, m, log)
	actionService := service.NewActionService(actionRepo, boardRepo, workspaceRepo, publisher, m, log)
	workspaceService := service.NewWorkspaceService(workspaceRepo, boardRepo, userRepo, cfg.Notifications, m, log)
	boardService := service.NewBoardService(boardRepo, workspaceRepo, userRepo, actionService, cfg.Notifications, m, log)
	listService := service.NewListService(listRepo, boardRepo, workspaceRepo, actionService, m, log)
	cardService := service.NewCardService(cardRepo, listRepo, boardRepo, workspaceRepo, userRepo, actionService, cfg.Notifications, m, log)
	commentService := service.NewCommentService(commentRepo, cardRepo, listRepo, boardRepo, workspaceRepo, actionService, cfg.Notifications, m, log)
	calendarService := service.NewCalendarService(eventRepo, workspaceRepo, m, log)
	uploadService := service.NewUploadService(cfg.S3Client, cardRepo, listRepo, boardRepo, workspaceRepo, m, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	boardHandler := handler.NewBoardHandler(boardService)
	listHandler := handler.NewListHandler(listService)
	cardHandler := handler.NewCardHandler(cardService)
	commentHandler := handler.NewCommentHandler(commentService)
	actionHandler := handler.NewActionHandler(actionService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", metricsHandler)
		api.GET("/health", health)
	}

	authMiddleware := middleware.Auth(auth.NewValidator(cfg.Tokens, blacklist), cfg.Logger)

	// ============================================================
	// Auth routes (public, rate limited)
	// ============================================================
	authRoutes := api.Group("/auth")
	if cfg.RateLimiter != nil {
		authRoutes.Use(cfg.RateLimiter.Middleware())
	}
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authMiddleware, authHandler.Logout)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)

	users := protected.Group("/users")
	{
		users.GET("/me", authHandler.GetMe)
		users.PATCH("/me", authHandler.UpdateMe)
	}

	workspaces := protected.Group("/workspaces")
	{
		workspaces.POST("", workspaceHandler.CreateWorkspace)
		workspaces.GET("", workspaceHandler.ListWorkspaces)
		workspaces.GET("/:id", workspaceHandler.GetWorkspace)
		workspaces.PATCH("/:id", workspaceHandler.UpdateWorkspace)
		workspaces.DELETE("/:id", workspaceHandler.DeleteWorkspace)
		workspaces.GET("/:id/members", workspaceHandler.ListMembers)
		workspaces.POST("/:id/members", workspaceHandler.AddMember)
		workspaces.DELETE("/:id/members/:userId", workspaceHandler.RemoveMember)
	}

	tasks := protected.Group("/tasks")

	boards := tasks.Group("/boards")
	{
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("/workspace/:workspaceId", boardHandler.GetBoardsByWorkspace)
		boards.GET("/:id", boardHandler.GetBoard)
		boards.PATCH("/:id", boardHandler.UpdateBoard)
		boards.DELETE("/:id", boardHandler.DeleteBoard)
		boards.GET("/:id/members", boardHandler.GetMembers)
		boards.POST("/:id/members", boardHandler.AddMember)
		boards.DELETE("/:id/members/:userId", boardHandler.RemoveMember)
		boards.PATCH("/:id/members/:userId/role", boardHandler.UpdateMemberRole)
		boards.GET("/:id/access", boardHandler.CheckAccess)

		if cfg.Hub != nil {
			feedHandler := handler.NewFeedHandler(boardService, cfg.Hub, cfg.AllowedOrigins, cfg.Logger)
			boards.GET("/:id/feed", feedHandler.Subscribe)
		}
	}

	lists := tasks.Group("/lists")
	{
		lists.POST("", listHandler.CreateList)
		lists.GET("/board/:boardId", listHandler.GetListsByBoard)
		lists.GET("/:id", listHandler.GetList)
		lists.PATCH("/:id", listHandler.UpdateList)
		lists.DELETE("/:id", listHandler.DeleteList)
		lists.POST("/:id/reorder", listHandler.ReorderLists)
	}

	cards := tasks.Group("/cards")
	{
		cards.POST("", cardHandler.CreateCard)
		cards.GET("/list/:listId", cardHandler.GetCardsByList)
		cards.GET("/:id", cardHandler.GetCard)
		cards.PATCH("/:id", cardHandler.UpdateCard)
		cards.DELETE("/:id", cardHandler.DeleteCard)
		cards.POST("/:id/assignees", cardHandler.AddAssignee)
		cards.DELETE("/:id/assignees/:userId", cardHandler.RemoveAssignee)
		cards.POST("/:id/watchers", cardHandler.AddWatcher)
		cards.DELETE("/:id/watchers/:userId", cardHandler.RemoveWatcher)
		cards.PATCH("/:id/move", cardHandler.MoveCard)
		cards.POST("/:id/reorder", cardHandler.ReorderCards)
	}

	comments := tasks.Group("/comments")
	{
		comments.POST("", commentHandler.CreateComment)
		comments.GET("/card/:cardId", commentHandler.GetCommentsByCard)
		comments.GET("/:id", commentHandler.GetComment)
		comments.PATCH("/:id", commentHandler.UpdateComment)
		comments.DELETE("/:id", commentHandler.DeleteComment)
	}

	actions := tasks.Group("/actions")
	{
		actions.GET("/board/:boardId", actionHandler.GetBoardActions)
		actions.GET("/board/:boardId/user/:userId", actionHandler.GetBoardUserActions)
		actions.GET("/target/:targetId", actionHandler.GetTargetActions)
	}

	calendar := protected.Group("/calendar")
	{
		calendar.POST("", calendarHandler.CreateEvent)
		calendar.GET("/workspace/:workspaceId", calendarHandler.GetWorkspaceEvents)
		calendar.GET("/workspace/:workspaceId/upcoming", calendarHandler.GetUpcomingEvents)
		calendar.GET("/workspace/:workspaceId/ongoing", calendarHandler.GetOngoingEvents)
		calendar.GET("/workspace/:workspaceId/month", calendarHandler.GetMonthEvents)
		calendar.GET("/workspace/:workspaceId/range", calendarHandler.GetRangeEvents)
		calendar.GET("/:id", calendarHandler.GetEvent)
		calendar.PATCH("/:id", calendarHandler.UpdateEvent)
		calendar.DELETE("/:id", calendarHandler.DeleteEvent)
		calendar.PATCH("/:id/cancel", calendarHandler.CancelEvent)
	}

	protected.POST("/uploads/presigned-url", uploadHandler.CreatePresignedURL)

	return r
}

// healthHandler reports 503 until the database answers a ping
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "up"})
	}
}
