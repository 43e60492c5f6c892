package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	_ "github.com/swiftpos/backend/docs" // Импорт сгенерированных файлов
	"github.com/swiftpos/backend/internal/cfg"
	"github.com/swiftpos/backend/internal/usecase"
	"github.com/swiftpos/backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init навешивает шлюз доступа на весь маршрутный контур и регистрирует
// обработчики. Порядок важен: middleware — до маршрутов.
func (r *Router) Init(storeUC usecase.StoreUC, invoiceUC usecase.InvoiceUC, authCfg *cfg.AuthCfg, storeCfg *cfg.StoreCfg) {
	gate := NewAccessGate(authCfg, r.logger)
	r.router.Use(gate.Handler)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	authHandler := NewAuthHandler(authCfg, r.logger)
	prHandler := NewProductHandler(storeUC, r.logger)
	saleHandler := NewSaleHandler(storeUC, invoiceUC, r.logger)
	invoiceHandler := NewInvoiceHandler(invoiceUC, storeCfg, r.logger)

	r.router.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", authHandler.login)
		registerProductRoutes(api, prHandler)
		registerSaleRoutes(api, saleHandler)
	})

	r.router.Get("/invoice/{id}", invoiceHandler.getInvoicePage)
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Patch("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)
		pr.Post("/{id}/stock", prHandler.adjustStock)
	})
}

func registerSaleRoutes(router chi.Router, saleHandler *SaleHandler) {
	router.Route("/sales", func(s chi.Router) {
		s.Get("/", saleHandler.listSales)
		s.Post("/", saleHandler.recordSale)
		s.Get("/{id}", saleHandler.getSale)
	})
}
