package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/middleware"
	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/service_interfaces"
)

type NewsController struct {
	service service_interfaces.NewsService
}

func NewNewsController(service service_interfaces.NewsService) *NewsController {
	return &NewsController{service: service}
}

func (c *NewsController) RegisterRoutes(r chi.Router, userAuth func(http.Handler) http.Handler) {
	r.Get("/news", c.list)
	r.With(userAuth).Get("/me/news", c.listForAccount)
}

func (c *NewsController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.List(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *NewsController) listForAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		respond(w, r, http.StatusUnauthorized, commons.ErrorResponse[[]models.NewsResponse]("Invalid credentials"), start)
		return
	}

	response, err := c.service.ListForAccount(r.Context(), account.ID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}
