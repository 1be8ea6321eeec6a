package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gedo/docs"
	"gedo/internal/http/middleware"
	"gedo/internal/service"
)

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	DB        Pinger
	Auth      service.AuthService
	Registros service.RegistroService
	Obras     service.ObraService
	Accounts  service.UserService
	Tipos     service.TipoRegistroService
	Dashboard service.DashboardService
	Tokens    middleware.TokenParser
	// Users loads the account behind a bearer token.
	Users middleware.UserLoader
	// Gatherer backs /metrics. The route is skipped when nil.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parsing, calling the service, mapping errors.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", Liveness())

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	api := app.Group("/api")
	api.Post("/auth/login", Login(d.Auth))

	requireAuth := middleware.RequireAuth(d.Tokens, d.Users, unauthorized)
	adminOnly := middleware.RequireAdmin(forbidden)

	api.Get("/auth/me", requireAuth, Me(d.Auth))
	api.Post("/auth/change-password", requireAuth, ChangePassword(d.Accounts))
	api.Get("/auth/password-status", requireAuth, PasswordStatus(d.Accounts))
	api.Post("/auth/register", requireAuth, adminOnly, CreateUser(d.Accounts))
	api.Post("/auth/admin/change-user-password", requireAuth, adminOnly, AdminChangePassword(d.Accounts))

	users := api.Group("/auth/users", requireAuth, adminOnly)
	users.Get("/", ListUsers(d.Accounts))
	users.Get("/:id", GetUser(d.Accounts))
	users.Put("/:id", UpdateUser(d.Accounts))
	users.Delete("/:id", DeleteUser(d.Accounts))

	registros := api.Group("/registros", requireAuth)
	registros.Get("/", ListRegistros(d.Registros))
	registros.Post("/", CreateRegistro(d.Registros))
	registros.Get("/:id", GetRegistro(d.Registros))
	registros.Put("/:id", UpdateRegistro(d.Registros))
	registros.Delete("/:id", DeleteRegistro(d.Registros))
	registros.Get("/:id/download", DownloadAttachment(d.Registros))
	api.Get("/pesquisa", requireAuth, ListRegistros(d.Registros))

	obras := api.Group("/obras", requireAuth)
	obras.Get("/", ListObras(d.Obras))
	obras.Get("/:id", GetObra(d.Obras))
	obras.Post("/", adminOnly, CreateObra(d.Obras))
	obras.Put("/:id", adminOnly, UpdateObra(d.Obras))
	obras.Delete("/:id", adminOnly, DeleteObra(d.Obras))

	tipos := api.Group("/tipos-registro", requireAuth)
	tipos.Get("/", ListTiposRegistro(d.Tipos))
	tipos.Get("/all", adminOnly, ListAllTiposRegistro(d.Tipos))
	tipos.Get("/:id", GetTipoRegistro(d.Tipos))
	tipos.Post("/", adminOnly, CreateTipoRegistro(d.Tipos))
	tipos.Put("/:id", adminOnly, UpdateTipoRegistro(d.Tipos))
	tipos.Delete("/:id", adminOnly, DeleteTipoRegistro(d.Tipos))

	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.Get("/stats", DashboardStats(d.Dashboard))
	dashboard.Get("/registros-timeline", DashboardTimeline(d.Dashboard))
	dashboard.Get("/atividades-recentes", DashboardRecent(d.Dashboard))
	dashboard.Get("/top-tipos-registro", DashboardTopTipos(d.Dashboard))
}
