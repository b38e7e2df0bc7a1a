package controller

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/middleware"
	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/service_interfaces"
)

type StatementController struct {
	service service_interfaces.StatementService
}

func NewStatementController(service service_interfaces.StatementService) *StatementController {
	return &StatementController{service: service}
}

func (c *StatementController) RegisterRoutes(r chi.Router, userAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(userAuth)
		r.Get("/me/statement", c.statement)
		r.Get("/me/statement.csv", c.statementCSV)
	})
}

func (c *StatementController) statement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respond(w, r, http.StatusUnauthorized, commons.ErrorResponse[models.StatementResponse]("Invalid credentials"), start)
		return
	}

	response, err := c.service.Statement(r.Context(), account.AccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *StatementController) statementCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respond(w, r, http.StatusUnauthorized, commons.ErrorResponse[models.StatementResponse]("Invalid credentials"), start)
		return
	}

	response, err := c.service.Statement(r.Context(), account.AccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	var buf bytes.Buffer
	if err := c.service.WriteCSV(&buf, *response.Data); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusInternalServerError, commons.ErrorResponse[models.StatementResponse]("failed to build statement", "Unable to build statement right now"), start)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="statement_`+account.AccountNumber+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     http.StatusOK,
		"durationMs": time.Since(start).Milliseconds(),
		"rows":       len(response.Data.Rows),
	})
}
