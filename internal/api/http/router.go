package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"furnirent-backend/internal/security"
	"furnirent-backend/internal/service"
)

// Services bundles everything the router needs to expose the API.
type Services struct {
	Auth         service.AuthService
	Product      service.ProductService
	Order        service.OrderService
	Transport    service.TransportService
	Payment      service.PaymentService
	Notification service.NotificationService
	Tokens       security.TokenManager
}

// NewRouter builds the full API route table. Everything under /api/v1
// except signup, login and the product catalog requires a bearer token.
func NewRouter(svcs Services) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(svcs.Auth)
	productHandler := NewProductHandler(svcs.Product)
	orderHandler := NewOrderHandler(svcs.Order)
	transportHandler := NewTransportHandler(svcs.Transport)
	paymentHandler := NewPaymentHandler(svcs.Payment)
	noteHandler := NewNotificationHandler(svcs.Notification)

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{productID:[0-9]+}", productHandler.Get).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(svcs.Tokens))

	authed.HandleFunc("/products", productHandler.Add).Methods(http.MethodPost)

	authed.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{orderID:[0-9]+}", orderHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{orderID:[0-9]+}", orderHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/orders/{orderID:[0-9]+}/status", orderHandler.ChangeStatus).Methods(http.MethodPut)
	authed.HandleFunc("/orders/{orderID:[0-9]+}/cancel", orderHandler.Cancel).Methods(http.MethodPost)

	authed.HandleFunc("/orders/{orderID:[0-9]+}/transport/propose", transportHandler.Propose).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{orderID:[0-9]+}/transport/accept", transportHandler.Accept).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{orderID:[0-9]+}/transport/reject", transportHandler.Reject).Methods(http.MethodPost)

	authed.HandleFunc("/orders/{orderID:[0-9]+}/payments", paymentHandler.Pay).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{orderID:[0-9]+}/payments", paymentHandler.ListForOrder).Methods(http.MethodGet)
	authed.HandleFunc("/payments", paymentHandler.ListMine).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{notificationID:[0-9]+}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	return router
}
