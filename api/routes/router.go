package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storefrontlabs/widget/api/controllers"
	"github.com/storefrontlabs/widget/api/middleware"
	"github.com/storefrontlabs/widget/internal/storefront"
	"github.com/storefrontlabs/widget/pkg/config"
	"github.com/storefrontlabs/widget/pkg/logger"
)

type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Widget   *storefront.Widget
	Registry *prometheus.Registry
}

// New assembles the widget HTTP surface: health probes, the widget state
// and action routes, and the metrics endpoint.
func New(params Params) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(params.Logger))
	r.Use(middleware.RequestID(params.Logger))
	r.Use(middleware.Logging(params.Logger))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive(params.Config))
	r.Get("/health/ready", controllers.HealthReady(params.Config))

	r.Route("/widget", func(r chi.Router) {
		r.Get("/state", controllers.State(params.Widget))
		r.Get("/cart", controllers.Cart(params.Widget))

		r.Post("/selection/product", controllers.SelectProduct(params.Widget, params.Logger))
		r.Post("/selection/variant", controllers.SelectVariant(params.Widget, params.Logger))
		r.Post("/selection/quantity", controllers.QuantityDelta(params.Widget, params.Logger))

		r.Post("/cart/items", controllers.AddToCart(params.Widget, params.Logger))
		r.Delete("/cart/items/{index}", controllers.RemoveCartItem(params.Widget, params.Logger))
	})

	if params.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
