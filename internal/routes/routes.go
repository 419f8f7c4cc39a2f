package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"compuscan/internal/controllers"
	"compuscan/internal/repositories"
	"compuscan/internal/services"
	"compuscan/pkg/config"
	"compuscan/pkg/filestorage"
	"compuscan/pkg/middleware"
	"compuscan/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}

	// repositories
	userRepo := repositories.NewUserRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	attendanceRepo := repositories.NewAttendanceRepository(dbConn)
	adminRepo := repositories.NewAdminRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// services
	adminChecker := services.NewAuthAdminService(adminRepo, cacheRepo, cfg.Auth.AdminCacheTTL, logger)
	authService := services.NewAuthService(userRepo, adminRepo, cacheRepo, jwtSvc, &cfg.Auth, logger)
	userService := services.NewUserService(userRepo, fileStorage, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, userRepo, logger)
	attendanceService := services.NewAttendanceService(attendanceRepo, userRepo, logger)
	dashboardService := services.NewDashboardService(userRepo, equipmentRepo, attendanceRepo, logger)
	reportService := services.NewReportService(attendanceRepo, userRepo, logger)

	// controllers
	authCtrl := controllers.NewAuthController(authService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	attendanceCtrl := controllers.NewAttendanceController(attendanceService, logger)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, adminChecker, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authCtrl)
	runUserRouter(secureGroup, userCtrl, authMW)
	runEquipmentRouter(secureGroup, equipmentCtrl, authMW)
	runAttendanceRouter(secureGroup, attendanceCtrl, authMW)
	runDashboardRouter(secureGroup, dashboardCtrl)
	runReportRouter(secureGroup, reportCtrl, authMW)

	logger.Info("router initialized")
}
