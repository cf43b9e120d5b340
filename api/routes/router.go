package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codclick-aut6/clickprato6-sub000/api/controllers"
	cartcontrollers "github.com/codclick-aut6/clickprato6-sub000/api/controllers/cart"
	ordercontrollers "github.com/codclick-aut6/clickprato6-sub000/api/controllers/orders"
	"github.com/codclick-aut6/clickprato6-sub000/api/middleware"
	catalogsvc "github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
	cartsvc "github.com/codclick-aut6/clickprato6-sub000/internal/cart"
	ordersvc "github.com/codclick-aut6/clickprato6-sub000/internal/orders"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/config"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/logger"
)

// Services bundles the wired service layer handed to the router.
type Services struct {
	Catalog catalogsvc.Service
	Cart    cartsvc.Service
	Orders  ordersvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers map[string]controllers.Pinger,
	registry *prometheus.Registry,
	services Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog/items", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(services.Catalog, logg))
			r.Get("/{itemId}", controllers.CatalogDetail(services.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Get("/", cartcontrollers.CartFetch(services.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(services.Cart, logg))
			r.Post("/items", cartcontrollers.CartAddItem(services.Cart, logg))
			r.Post("/combinations", cartcontrollers.CartAddCombination(services.Cart, logg))
			r.Post("/preview", cartcontrollers.CartPreviewLine(services.Cart, logg))
			r.Post("/combinations/preview", cartcontrollers.CartPreviewCombination(services.Cart, logg))
			r.Post("/items/{itemId}/increment", cartcontrollers.CartIncrementLine(services.Cart, logg))
			r.Post("/items/{itemId}/decrement", cartcontrollers.CartDecrementLine(services.Cart, logg))
			r.Delete("/items/{itemId}", cartcontrollers.CartRemoveLine(services.Cart, logg))
			r.Put("/lines/{lineIndex}", cartcontrollers.CartUpdateLine(services.Cart, logg))
			r.Post("/coupon", cartcontrollers.CartApplyCoupon(services.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.Session(logg)).Post("/checkout", ordercontrollers.Checkout(services.Orders, logg))
			r.Get("/", ordercontrollers.List(services.Orders, logg))
			r.Get("/{orderId}", ordercontrollers.Detail(services.Orders, logg))
			r.Post("/{orderId}/status", ordercontrollers.UpdateStatus(services.Orders, logg))
		})
	})

	return r
}
