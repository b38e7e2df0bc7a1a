package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/logger"
	"github.com/stimlink/savings-ledger/src/internal/usecase/service_interfaces"
)

type DirectorController struct {
	news     service_interfaces.NewsService
	director service_interfaces.DirectorService
}

func NewDirectorController(news service_interfaces.NewsService, director service_interfaces.DirectorService) *DirectorController {
	return &DirectorController{news: news, director: director}
}

func (c *DirectorController) RegisterRoutes(r chi.Router, directorAuth func(http.Handler) http.Handler) {
	r.Route("/director", func(r chi.Router) {
		r.Use(directorAuth)
		r.Get("/news", c.listNews)
		r.Post("/news", c.publishNews)
		r.Delete("/news/{id}", c.deleteNews)
		r.Post("/password-resets", c.resetPassword)
	})
}

func (c *DirectorController) listNews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.news.List(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *DirectorController) publishNews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PublishNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.NewsResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	response, err := c.news.Publish(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusCreated, response, start)
}

func (c *DirectorController) deleteNews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		err = fmt.Errorf("id must be a positive integer")
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[struct{}]("validation failed", err.Error()), start)
		return
	}

	response, err := c.news.Delete(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message, "newsId": id})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}

func (c *DirectorController) resetPassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		respond(w, r, http.StatusBadRequest, commons.ErrorResponse[models.PasswordResetResponse]("invalid request body", err.Error()), start)
		return
	}
	logRequest(r, req)

	response, err := c.director.ResetPassword(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		respond(w, r, statusFor(response.Message), response, start)
		return
	}

	respond(w, r, http.StatusOK, response, start)
}
