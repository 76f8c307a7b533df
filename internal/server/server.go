package server

import (
	"net/http"

	"carita-payment-api/internal/handler"
	custommw "carita-payment-api/internal/middleware"
	"carita-payment-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
	adminJWTSecret string
}

func NewServer(paymentService service.PaymentService, adminJWTSecret string) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	paymentHandler := handler.NewPaymentHandler(paymentService)

	s := &Server{
		echo:           e,
		paymentHandler: paymentHandler,
		adminJWTSecret: adminJWTSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Carita Hidroponik API is running."})
	})

	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// The storefront historically called these under both prefixes.
	s.mountPaymentRoutes(api.Group("/payment"))
	s.mountPaymentRoutes(api.Group("/order"))
}

func (s *Server) mountPaymentRoutes(g *echo.Group) {
	g.POST("/create-snap-token", s.paymentHandler.CreateSnapToken)
	g.POST("/confirm", s.paymentHandler.ConfirmOrder)

	// -------- midtrans webhook --------
	g.POST("/webhook", s.paymentHandler.Webhook)

	// -------- admin --------
	g.GET("/admin/orders", s.paymentHandler.GetPaidOrdersForAdmin, custommw.AdminAuth(s.adminJWTSecret))
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// Handler exposes the underlying mux for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
