package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/service_interfaces"
)

type ChargesController struct {
	service service_interfaces.ChargesService
}

func NewChargesController(service service_interfaces.ChargesService) *ChargesController {
	return &ChargesController{service: service}
}

func (c *ChargesController) RegisterRoutes(r chi.Router, _ func(http.Handler) http.Handler) {
	r.Get("/charges", c.getCharges)
}

func (c *ChargesController) getCharges(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := models.GetChargesRequest{
		Amount: r.URL.Query().Get("amount"),
	}
	logRequest(r, req)

	response, err := c.service.GetChargesSummary(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}
