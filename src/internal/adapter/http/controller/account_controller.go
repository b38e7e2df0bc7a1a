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

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(r chi.Router, userAuth func(http.Handler) http.Handler) {
	r.Post("/signup", c.signup)
	r.Post("/login", c.login)
	r.Post("/forgot-password", c.forgotPassword)
	r.With(userAuth).Get("/me/dashboard", c.dashboard)
}

func (c *AccountController) signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Register(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusCreated, response, start)
}

func (c *AccountController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Login(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *AccountController) forgotPassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.ForgotPasswordResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	response, err := c.service.ForgotPassword(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusAccepted, response, start)
}

func (c *AccountController) dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respond(w, r, http.StatusUnauthorized, commons.ErrorResponse[models.DashboardResponse]("Invalid credentials"), start)
		return
	}

	response, err := c.service.Dashboard(r.Context(), account.AccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}
