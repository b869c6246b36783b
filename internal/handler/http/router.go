package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/handler/http/middleware"
	"github.com/haisanviet/backoffice-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	rbacService rbac.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	rbacHandler RBACHandler,
	attendanceHandler AttendanceHandler,
	catalogHandler CatalogHandler,
	orderHandler OrderHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	requirePermission := func(codename string) func(http.Handler) http.Handler {
		return middleware.RequirePermission(rbacService, codename)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.With(requirePermission("user.view")).Get("/", userHandler.List)
				r.With(requirePermission("user.view")).Get("/{id}", userHandler.Get)
				r.With(requirePermission("user.manage")).Post("/", userHandler.Create)
				r.With(requirePermission("user.manage")).Patch("/{id}", userHandler.Update)
				r.With(requirePermission("user.manage")).Delete("/{id}", userHandler.Deactivate)

				r.With(requirePermission("role.manage")).Get("/{userId}/roles", rbacHandler.ListUserRoles)
				r.With(requirePermission("role.manage")).Get("/{userId}/permissions", rbacHandler.ListUserPermissions)
				r.With(requirePermission("role.manage")).Delete("/{userId}/roles/{roleId}", rbacHandler.RevokeRole)
			})

			r.Route("/roles", func(r chi.Router) {
				r.Use(requirePermission("role.manage"))
				r.Get("/", rbacHandler.ListRoles)
				r.Post("/", rbacHandler.CreateRole)
				r.Get("/{id}", rbacHandler.GetRole)
				r.Delete("/{id}", rbacHandler.DeleteRole)
				r.Get("/{id}/permissions", rbacHandler.ListRolePermissions)
				r.Put("/{id}/permissions", rbacHandler.SetRolePermissions)
				r.Post("/assign", rbacHandler.AssignRole)
			})

			r.With(requirePermission("role.manage")).Get("/permissions", rbacHandler.ListPermissions)

			r.Route("/attendance", func(r chi.Router) {
				r.With(requirePermission("attendance.manage")).Post("/", attendanceHandler.CheckIn)
				r.With(requirePermission("attendance.view")).Get("/users/{userId}", attendanceHandler.ListByUserMonth)
				r.With(requirePermission("attendance.manage")).Delete("/{id}", attendanceHandler.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.With(requirePermission("catalog.view")).Get("/", catalogHandler.ListCategories)
				r.With(requirePermission("catalog.manage")).Post("/", catalogHandler.CreateCategory)
			})

			r.Route("/products", func(r chi.Router) {
				r.With(requirePermission("catalog.view")).Get("/", catalogHandler.ListProducts)
				r.With(requirePermission("catalog.view")).Get("/{id}", catalogHandler.GetProduct)
				r.With(requirePermission("catalog.manage")).Post("/", catalogHandler.CreateProduct)
				r.With(requirePermission("catalog.manage")).Patch("/{id}", catalogHandler.UpdateProduct)
				r.With(requirePermission("catalog.manage")).Post("/{id}/stock", catalogHandler.AdjustStock)
			})

			r.Route("/import-sources", func(r chi.Router) {
				r.With(requirePermission("catalog.view")).Get("/", catalogHandler.ListImportSources)
				r.With(requirePermission("catalog.manage")).Post("/", catalogHandler.CreateImportSource)
			})

			r.Route("/import-batches", func(r chi.Router) {
				r.With(requirePermission("catalog.view")).Get("/", catalogHandler.ListImportBatches)
				r.With(requirePermission("catalog.view")).Get("/{id}", catalogHandler.GetImportBatch)
				r.With(requirePermission("catalog.manage")).Post("/", catalogHandler.CreateImportBatch)
			})

			r.Route("/orders", func(r chi.Router) {
				r.With(requirePermission("order.view")).Get("/", orderHandler.List)
				r.With(requirePermission("order.view")).Get("/{id}", orderHandler.Get)
				r.With(requirePermission("order.create")).Post("/", orderHandler.Create)
				r.With(requirePermission("order.manage")).Patch("/{id}/status", orderHandler.UpdateStatus)
				r.With(requirePermission("order.manage")).Post("/{id}/payments", orderHandler.RecordPayment)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(requirePermission("payroll.calculate")).Post("/calculate", payrollHandler.Calculate)
				r.With(requirePermission("payroll.calculate")).Post("/calculate-bulk", payrollHandler.CalculateBulk)

				r.Route("/records", func(r chi.Router) {
					r.With(requirePermission("payroll.view")).Get("/", payrollHandler.ListRecords)
					r.With(requirePermission("payroll.view")).Get("/{id}", payrollHandler.GetRecord)
					r.With(requirePermission("payroll.approve")).Patch("/{id}/status", payrollHandler.UpdateStatus)
					r.With(requirePermission("payroll.approve")).Post("/approve", payrollHandler.ApproveRecords)
					r.With(requirePermission("payroll.approve")).Post("/mark-paid", payrollHandler.MarkRecordsPaid)
					r.With(requirePermission("payroll.calculate")).Delete("/{id}", payrollHandler.DeleteRecord)

					r.With(requirePermission("payroll.calculate")).Post("/{id}/adjustments", payrollHandler.AddAdjustment)
					r.With(requirePermission("payroll.view")).Get("/{id}/adjustments", payrollHandler.ListAdjustments)
				})

				r.Route("/summary", func(r chi.Router) {
					r.Use(requirePermission("payroll.view"))
					r.Get("/", payrollHandler.GetSummary)
					r.Get("/employees", payrollHandler.GetEmployeesSummary)
				})

				r.Route("/configs", func(r chi.Router) {
					r.Use(requirePermission("payroll.config"))
					r.Get("/", payrollHandler.ListConfigs)
					r.Post("/", payrollHandler.CreateConfig)
					r.Get("/{id}", payrollHandler.GetConfig)
					r.Patch("/{id}", payrollHandler.UpdateConfig)
					r.Delete("/{id}", payrollHandler.DeactivateConfig)
				})
			})
		})
	})
	return r
}
