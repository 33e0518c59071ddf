package http

import (
	"net/http"

	"clinic-booking/internal/delivery/http/handler"
	"clinic-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	bookingHandler    *handler.BookingHandler
	scheduleHandler   *handler.ScheduleHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
	metricsHandler    http.Handler
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	scheduleHandler *handler.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		bookingHandler:    bookingHandler,
		scheduleHandler:   scheduleHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		metricsMiddleware: metricsMiddleware,
		metricsHandler:    metricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check and metrics
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// Auth routes (public)
	r.router.HandleFunc("/api/register", r.authHandler.Register).Methods(http.MethodPost)
	r.router.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	protected := r.router.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Booking: the bearer token is optional when the body names the user
	booking := r.router.NewRoute().Subrouter()
	booking.Use(r.authMiddleware.Identify)
	booking.HandleFunc("/book", r.bookingHandler.CreateBooking).Methods(http.MethodPost)

	// Schedule reads (public)
	r.router.HandleFunc("/slots", r.scheduleHandler.GetSlots).Methods(http.MethodGet)
	r.router.HandleFunc("/bookings", r.scheduleHandler.GetUpcoming).Methods(http.MethodGet)
	r.router.HandleFunc("/appointments", r.scheduleHandler.GetByDate).Methods(http.MethodGet)
	r.router.HandleFunc("/appointments/{userId}", r.bookingHandler.GetUserAppointments).Methods(http.MethodGet)

	// Preflight requests are answered by the CORS middleware
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
