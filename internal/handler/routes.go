package handler

import (
	"net/http"

	"github.com/bellcorp/expense-tracker/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, transactions *service.TransactionService) {
	authHandler := NewAuthHandler(auth)
	txHandler := NewTransactionHandler(transactions)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleWelcome)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}
	mux.Handle("GET /api/transactions", protected(txHandler.HandleList))
	mux.Handle("GET /api/transactions/summary", protected(txHandler.HandleSummary))
	mux.Handle("POST /api/transactions", protected(txHandler.HandleCreate))
	mux.Handle("PUT /api/transactions/{id}", protected(txHandler.HandleUpdate))
	mux.Handle("DELETE /api/transactions/{id}", protected(txHandler.HandleDelete))
}
