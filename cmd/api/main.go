package main

import (
	"fmt"
	"net/http"

	"github.com/haisanviet/backoffice-go/internal/config"
	appHTTP "github.com/haisanviet/backoffice-go/internal/handler/http"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/haisanviet/backoffice-go/internal/pkg/jwt"
	"github.com/haisanviet/backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/haisanviet/backoffice-go/internal/service/attendance"
	authService "github.com/haisanviet/backoffice-go/internal/service/auth"
	catalogService "github.com/haisanviet/backoffice-go/internal/service/catalog"
	orderService "github.com/haisanviet/backoffice-go/internal/service/order"
	payrollService "github.com/haisanviet/backoffice-go/internal/service/payroll"
	rbacService "github.com/haisanviet/backoffice-go/internal/service/rbac"
	userService "github.com/haisanviet/backoffice-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	rbacRepo := postgresql.NewRBACRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	catalogRepo := postgresql.NewCatalogRepository(db)
	orderRepo := postgresql.NewOrderRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	salaryConfigRepo := postgresql.NewSalaryConfigRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, rbacRepo, JWTService)
	userSvc := userService.NewService(userRepo)
	rbacSvc := rbacService.NewService(rbacRepo, userRepo)
	attendanceSvc := attendanceService.NewService(attendanceRepo, userRepo)
	catalogSvc := catalogService.NewService(catalogRepo)
	orderSvc := orderService.NewService(orderRepo, catalogRepo)
	payrollSvc := payrollService.NewService(db, payrollRepo, salaryConfigRepo, userRepo, attendanceRepo, orderRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	rbacHandler := appHTTP.NewRBACHandler(rbacSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	catalogHandler := appHTTP.NewCatalogHandler(catalogSvc)
	orderHandler := appHTTP.NewOrderHandler(orderSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		JWTService,
		rbacSvc,
		authHandler,
		userHandler,
		rbacHandler,
		attendanceHandler,
		catalogHandler,
		orderHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
