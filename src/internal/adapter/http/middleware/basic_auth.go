package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/service_interfaces"
)

type contextKey int

const (
	accountKey contextKey = iota
	staffKey
)

// StaffAuth accepts HTTP Basic credentials of a staff member holding role.
func StaffAuth(authenticator service_interfaces.StaffAuthenticator, role domain.StaffRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, r, string(role), "missing")
				return
			}

			member, err := authenticator.Authenticate(r.Context(), role, username, password)
			if err != nil {
				if !errors.Is(err, domain.ErrInvalidCredentials) {
					logger.Error("basic auth middleware staff lookup failed", err, logger.Fields{
						"method": r.Method,
						"path":   r.URL.Path,
						"role":   role,
					})
					http.Error(w, "unable to authenticate right now", http.StatusInternalServerError)
					return
				}
				unauthorized(w, r, string(role), "invalid")
				return
			}

			logger.Info("basic auth middleware authorized request", logger.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"role":     role,
				"username": member.Username,
			})
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), staffKey, member)))
		})
	}
}

// UserAuth accepts HTTP Basic credentials of an account holder: email or
// username plus password.
func UserAuth(authenticator service_interfaces.AccountAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, r, "user", "missing")
				return
			}

			account, err := authenticator.Authenticate(r.Context(), identifier, password)
			if err != nil {
				if !errors.Is(err, domain.ErrInvalidCredentials) {
					logger.Error("basic auth middleware account lookup failed", err, logger.Fields{
						"method": r.Method,
						"path":   r.URL.Path,
					})
					http.Error(w, "unable to authenticate right now", http.StatusInternalServerError)
					return
				}
				unauthorized(w, r, "user", "invalid")
				return
			}

			logger.Info("basic auth middleware authorized request", logger.Fields{
				"method":        r.Method,
				"path":          r.URL.Path,
				"accountNumber": account.AccountNumber,
			})
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, account)))
		})
	}
}

func AccountFromContext(ctx context.Context) (domain.Account, bool) {
	account, ok := ctx.Value(accountKey).(domain.Account)
	return account, ok
}

func StaffFromContext(ctx context.Context) (domain.StaffMember, bool) {
	member, ok := ctx.Value(staffKey).(domain.StaffMember)
	return member, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request, realm string, reason string) {
	logger.Info("basic auth middleware unauthorized request", logger.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"realm":       realm,
		"credentials": reason,
	})
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
