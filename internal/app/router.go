package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	carthandler "github.com/Mrfarooqui038501/SalesChatBot/internal/cart/handler/http"
	cthandler "github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/handler/http"
	chathandler "github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/handler/http"
	authhandler "github.com/Mrfarooqui038501/SalesChatBot/internal/user/handler/http"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/health"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/middleware"
)

const serviceName = "saleschat-api"

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Products      *cthandler.ProductHandler
	Cart          *carthandler.CartHandler
	Chat          *chathandler.ChatHandler
	Auth          *authhandler.AuthHandler
	Health        *health.Handler
	TokenValidate middleware.TokenValidator
	CORSOrigins   []string
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all API routes registered. Catalog
// reads are public; cart and chat history require a bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   deps.CORSOrigins,
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(deps.Logger))

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", deps.Auth.Routes)
		r.Route("/products", deps.Products.Routes)

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Auth(deps.TokenValidate))
			deps.Cart.Routes(r)
		})
		r.Route("/chat", func(r chi.Router) {
			r.Use(middleware.Auth(deps.TokenValidate))
			deps.Chat.Routes(r)
		})
	})

	return r
}
