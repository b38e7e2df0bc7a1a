package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/middleware"
	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/service_interfaces"
)

type LedgerController struct {
	service service_interfaces.LedgerService
}

func NewLedgerController(service service_interfaces.LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

func (c *LedgerController) RegisterRoutes(r chi.Router, adminAuth func(http.Handler) http.Handler) {
	r.With(adminAuth).Post("/admin/accounts/{accountNumber}/operations", c.operation)
}

func (c *LedgerController) operation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	accountNumber := chi.URLParam(r, "accountNumber")

	var req models.AdminOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.LedgerOperationResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	actor := ""
	if member, ok := middleware.StaffFromContext(r.Context()); ok {
		actor = member.Username
	}

	response, err := c.service.AdminOperation(r.Context(), accountNumber, req, actor)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message, "accountNumber": accountNumber})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}
