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

type AdminController struct {
	admin         service_interfaces.AdminService
	notifications service_interfaces.NotificationService
}

func NewAdminController(admin service_interfaces.AdminService, notifications service_interfaces.NotificationService) *AdminController {
	return &AdminController{admin: admin, notifications: notifications}
}

func (c *AdminController) RegisterRoutes(r chi.Router, adminAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(adminAuth)
		r.Get("/admin/overview", c.overview)
		r.Post("/admin/accounts/{accountNumber}/messages", c.sendMessage)
	})
}

func (c *AdminController) overview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.admin.Overview(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *AdminController) sendMessage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	accountNumber := chi.URLParam(r, "accountNumber")

	var req models.CustomerMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.CustomerMessageResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	response, err := c.notifications.SendCustomerMessage(r.Context(), accountNumber, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message, "accountNumber": accountNumber})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusCreated, response, start)
}
