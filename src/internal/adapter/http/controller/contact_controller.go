package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/service_interfaces"
)

type ContactController struct {
	service service_interfaces.ContactService
}

func NewContactController(service service_interfaces.ContactService) *ContactController {
	return &ContactController{service: service}
}

func (c *ContactController) RegisterRoutes(r chi.Router, _ func(http.Handler) http.Handler) {
	r.Post("/contact", c.submit)
}

func (c *ContactController) submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.ContactResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Submit(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusCreated, response, start)
}
