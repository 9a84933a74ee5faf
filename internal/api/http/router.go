package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/staffing-tracker/internal/api/http/handlers"
	"github.com/spec-kit/staffing-tracker/internal/auth"
	"github.com/spec-kit/staffing-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	Staff          *handlers.StaffHandler
	Assignments    *handlers.AssignmentsHandler
	Users          *handlers.UsersHandler
	Billing        *handlers.BillingHandler
	Dashboard      *handlers.DashboardHandler
	Reports        *handlers.ReportsHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
	MetricsHandler http.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.MetricsHandler))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	projects := protected.Group("/projects")
	projects.Get("", cfg.Projects.ListProjects)
	projects.Get("/:id", cfg.Projects.GetProject)
	projects.Post("", auth.RequireWriter(), cfg.Projects.CreateProject)
	projects.Put("/:id", auth.RequireWriter(), cfg.Projects.UpdateProject)
	projects.Delete("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Projects.DeleteProject)

	staff := protected.Group("/staff")
	staff.Get("", cfg.Staff.ListStaff)
	staff.Get("/:id", cfg.Staff.GetStaff)
	staff.Post("", auth.RequireWriter(), cfg.Staff.CreateStaff)
	staff.Put("/:id", auth.RequireWriter(), cfg.Staff.UpdateStaff)
	staff.Delete("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Staff.DeleteStaff)

	assignments := protected.Group("/assignments")
	assignments.Get("", cfg.Assignments.ListAssignments)
	assignments.Post("", auth.RequireWriter(), cfg.Assignments.CreateAssignment)
	assignments.Delete("/:id", auth.RequireWriter(), cfg.Assignments.DeleteAssignment)

	users := protected.Group("/users", auth.RequireRole(domain.UserRoleAdmin))
	users.Get("", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Post("", cfg.Users.CreateUser)
	users.Put("/:id", cfg.Users.UpdateUser)
	users.Delete("/:id", cfg.Users.DeleteUser)

	billing := protected.Group("/billing")
	billing.Get("/summary", cfg.Billing.Summary)
	billing.Get("/matters", cfg.Billing.ListMatters)
	billing.Get("/matters/:id", cfg.Billing.GetMatter)
	billing.Post("/matters", auth.RequireWriter(), cfg.Billing.CreateMatter)
	billing.Put("/matters/:id", auth.RequireWriter(), cfg.Billing.UpdateMatter)
	billing.Get("/matters/:id/milestones", cfg.Billing.ListMilestones)
	billing.Post("/matters/:id/milestones", auth.RequireWriter(), cfg.Billing.CreateMilestone)
	billing.Put("/matters/:id/milestones/:milestoneId", auth.RequireWriter(), cfg.Billing.UpdateMilestone)
	billing.Get("/matters/:id/project-candidates", cfg.Billing.ProjectCandidates)
	billing.Post("/matters/:id/link-project", auth.RequireWriter(), cfg.Billing.LinkProject)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/summary", cfg.Dashboard.Summary)
	dashboard.Get("/heatmap", cfg.Dashboard.StaffingHeatmap)

	reports := protected.Group("/reports")
	reports.Get("/staffing.xlsx", cfg.Reports.StaffingWorkbook)
	reports.Get("/billing.xlsx", cfg.Reports.BillingWorkbook)

	protected.Get("/activity", auth.RequireRole(domain.UserRoleAdmin), cfg.Activity.ListRecent)
}
