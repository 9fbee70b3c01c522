package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"taskflow/internal/config"
	"taskflow/internal/handlers"
	"taskflow/internal/middleware"
)

// SetupRoutes builds and returns the application mux
func SetupRoutes(authHandler *handlers.AuthHandler, todosHandler *handlers.TodosHandler, healthHandler *handlers.HealthHandler, jwtCfg *config.JWTConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("/api/health", healthHandler.HealthCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/api/register", authHandler.Register)
	mux.HandleFunc("/api/login", authHandler.Login)

	// Todo routes (collection and item paths share one dispatcher)
	mux.HandleFunc("/api/todos", middleware.Authenticate(todosHandler.Todos, jwtCfg))
	mux.HandleFunc("/api/todos/", middleware.Authenticate(todosHandler.Todos, jwtCfg))

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("/", rootHandler)

	return mux
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("TaskFlow backend is running."))
}
