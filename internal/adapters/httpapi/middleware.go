package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/praxis/internal/ctxutil"
	"github.com/example/praxis/internal/logger"
)

const requestIDHeader = "X-Request-ID"

type claimsKey struct{}

// requestScope assigns a request id, attaches a scoped logger, recovers
// panics and records the access log and metrics.
func (a *api) requestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		log := logger.Named("http").With(logger.RequestID(reqID))
		ctx := ctxutil.WithRequestID(r.Context(), reqID)
		ctx = logger.ToContext(ctx, log)
		r = r.WithContext(ctx)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		var record func(method, route string, status int)
		if a.metrics != nil {
			record = a.metrics.Begin()
		}

		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", zap.Any("panic", rec), zap.Stack("stack"))
				if ww.Status() == 0 {
					writeJSON(ww, http.StatusInternalServerError, errorBody{Code: "internal", Message: "Erro interno"})
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			if route == "" {
				route = "unmatched"
			}
			if record != nil {
				record(r.Method, route, status)
			}
			log.Info("request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(status),
				logger.Duration(time.Since(start)),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// authenticate requires a valid bearer token and puts the user id and
// e-mail in the context.
func (a *api) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r.Header.Get("Authorization"))
		if raw == "" {
			a.unauthorized(w, r, "Token de acesso ausente")
			return
		}
		claims, err := a.tokens.Parse(raw)
		if err != nil {
			logger.From(r.Context()).Debug("token rejected", zap.Error(err))
			a.unauthorized(w, r, "Token de acesso inválido")
			return
		}

		ctx := ctxutil.WithActorID(r.Context(), claims.Subject)
		ctx = ctxutil.WithActorEmail(ctx, claims.Email)
		ctx = context.WithValue(ctx, claimsKey{}, claims)
		ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(claims.Subject)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin allows only tokens carrying the admin claim.
func (a *api) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(claimsKey{}).(*Claims)
		if claims == nil || !claims.Admin {
			a.observeError("forbidden")
			writeJSON(w, http.StatusForbidden, errorBody{Code: "forbidden", Message: "Acesso restrito a administradores"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *api) unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	a.observeError("unauthenticated")
	w.Header().Set("WWW-Authenticate", `Bearer realm="praxis"`)
	writeJSON(w, http.StatusUnauthorized, errorBody{Code: "unauthenticated", Message: msg})
}
