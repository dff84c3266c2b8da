package httpserver

import (
	"net/http"
	"strings"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/handlers"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers        *handlers.AuthHandlers
	ProfileHandlers     *handlers.ProfileHandlers
	WalletHandlers      *handlers.WalletHandlers
	ChargerHandlers     *handlers.ChargerHandlers
	ReservationHandlers *handlers.ReservationHandlers
	FeedHandler         http.HandlerFunc
	HealthHandler       http.HandlerFunc
}

// NewRouter wires HTTP routes with middleware.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	authenticated := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, authMiddleware)
	}

	mux.Handle("/health", method(http.MethodGet, deps.HealthHandler))

	mux.Handle("/api/auth/signup", method(http.MethodPost, http.HandlerFunc(deps.AuthHandlers.Signup)))
	mux.Handle("/api/auth/login", method(http.MethodPost, http.HandlerFunc(deps.AuthHandlers.Login)))
	mux.Handle("/api/auth/logout", method(http.MethodPost, authenticated(deps.AuthHandlers.Logout)))

	mux.Handle("/api/profile", method(http.MethodGet, authenticated(deps.ProfileHandlers.Me)))

	mux.Handle("/api/wallet", method(http.MethodGet, authenticated(deps.WalletHandlers.Balance)))
	mux.Handle("/api/wallet/funds", method(http.MethodPost, authenticated(deps.WalletHandlers.AddFunds)))

	mux.Handle("/api/chargers", methods(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(deps.ChargerHandlers.List),
		http.MethodPost: authenticated(deps.ChargerHandlers.Register),
	}))
	mux.Handle("/api/chargers/nearest", method(http.MethodGet, http.HandlerFunc(deps.ChargerHandlers.Nearest)))
	mux.Handle("/api/chargers/feed", method(http.MethodGet, deps.FeedHandler))

	mux.Handle("/api/reservations", methods(map[string]http.Handler{
		http.MethodGet:  authenticated(deps.ReservationHandlers.List),
		http.MethodPost: authenticated(deps.ReservationHandlers.Create),
	}))

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return methods(map[string]http.Handler{expected: handler})
}

func methods(byMethod map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := byMethod[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		allowed := make([]string, 0, len(byMethod))
		for m := range byMethod {
			allowed = append(allowed, m)
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}
