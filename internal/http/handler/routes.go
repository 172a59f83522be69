package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog"

	"sitecms/internal/http/middleware"
	"sitecms/internal/model"
	"sitecms/internal/service"
)

// Deps are the collaborators RegisterRoutes wires into handlers.
type Deps struct {
	DB      Pinger
	Content ContentService
	Intake  IntakeService
	Clients ClientService
	Audit   AccessLog
	Assets  AssetOpener

	// AdminAPIKey guards /api/admin. Empty disables the admin API.
	AdminAPIKey string
	// RateLimit is the number of public submissions one client may make
	// per RateWindow. Clients are told apart by c.IP(); see NewAppConfig.
	RateLimit  int
	RateWindow time.Duration
}

// NewAppConfig returns the fiber.Config the API runs with. c.IP() honours
// X-Forwarded-For only when the socket peer is one of trustedProxies, so
// per-client limits cannot be dodged by forging the header.
func NewAppConfig(log zerolog.Logger, trustedProxies []string) fiber.Config {
	return fiber.Config{
		ErrorHandler:            ErrorHandler(log),
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trustedProxies,
		EnableIPValidation:      true,
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	app.Get("/uploads/:name", ServeUpload(d.Assets))

	api := app.Group("/api")

	submissions := submissionLimiter(d.RateLimit, d.RateWindow)
	api.Post("/contact", submissions, SubmitContact(d.Intake))
	api.Post("/careers/apply", submissions, SubmitApplication(d.Intake))
	api.Get("/content/:kind", GetPublicContent(d.Content))
	api.Get("/clients", ListClients(d.Clients))

	admin := api.Group("/admin", middleware.AdminAuth(d.AdminAPIKey, func(c *fiber.Ctx) {
		meta := requestMeta(c)
		d.Audit.LogEvent(c.UserContext(), service.AuditEvent{
			IP:        meta.IP,
			UserAgent: meta.UserAgent,
			Method:    model.AccessMethodAPIKey,
			Success:   false,
		})
	}))

	admin.Get("/content/:kind", GetContent(d.Content))
	admin.Put("/content/:kind", UpdateContent(d.Content))
	admin.Post("/content/:kind/assets/:field", UploadContentAsset(d.Content))
	admin.Delete("/content/:kind/assets/:field", ClearContentAsset(d.Content))

	admin.Get("/contact-messages", ListContactMessages(d.Intake))
	admin.Get("/contact-messages/:id", GetContactMessage(d.Intake))
	admin.Patch("/contact-messages/:id/read", MarkContactMessageRead(d.Intake))
	admin.Post("/contact-messages/:id/replies", ReplyToContactMessage(d.Intake))
	admin.Delete("/contact-messages/:id", DeleteContactMessage(d.Intake))

	admin.Get("/job-applications", ListJobApplications(d.Intake))
	admin.Get("/job-applications/:id", GetJobApplication(d.Intake))
	admin.Patch("/job-applications/:id/read", MarkJobApplicationRead(d.Intake))
	admin.Delete("/job-applications/:id", DeleteJobApplication(d.Intake))

	admin.Get("/clients", ListClients(d.Clients))
	admin.Post("/clients", CreateClient(d.Clients))
	admin.Get("/clients/:id", GetClient(d.Clients))
	admin.Put("/clients/:id", UpdateClient(d.Clients))
	admin.Delete("/clients/:id", DeleteClient(d.Clients))
	admin.Post("/clients/:id/logo", UploadClientLogo(d.Clients))
	admin.Delete("/clients/:id/logo", ClearClientLogo(d.Clients))

	admin.Get("/access-logs", ListAccessLogs(d.Audit))
}

// submissionLimiter caps public submissions per resolved client IP.
func submissionLimiter(limit int, window time.Duration) fiber.Handler {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:          limit,
		Expiration:   window,
		// Forwarding headers are client-controlled; only c.IP() applies
		// the trusted proxy check.
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.ErrTooManyRequests
		},
	})
}
