package services

import (
	"time"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
)

func toAccountResponse(account domain.Account, currency string, loc *time.Location) models.AccountResponse {
	return models.AccountResponse{
		AccountNumber: account.AccountNumber,
		Username:      account.Username,
		Email:         account.Email,
		LastName:      account.LastName,
		MiddleName:    account.MiddleName,
		FirstName:     account.FirstName,
		FullName:      account.FullName(),
		Gender:        account.Gender,
		Address:       account.Address,
		Phone:         account.Phone,
		Balance:       account.Balance.String(),
		Currency:      currency,
		CreatedAt:     commons.FormatDisplayTime(account.CreatedAt, loc),
	}
}

func toNotificationResponses(notifications []domain.Notification, loc *time.Location) []models.NotificationResponse {
	out := make([]models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, models.NotificationResponse{
			Username:  n.Username,
			Message:   n.Message,
			CreatedAt: commons.FormatDisplayTime(n.CreatedAt, loc),
		})
	}
	return out
}

func toEntryResponses(entries []domain.LedgerEntry, loc *time.Location) []models.LedgerEntryResponse {
	out := make([]models.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.LedgerEntryResponse{
			ID:          e.ID,
			OperationID: e.OperationID,
			Kind:        string(e.Kind),
			Label:       e.Kind.Label(),
			Amount:      e.Amount.String(),
			CreatedAt:   commons.FormatDisplayTime(e.CreatedAt, loc),
		})
	}
	return out
}

func toNewsResponses(items []domain.News, loc *time.Location) []models.NewsResponse {
	out := make([]models.NewsResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toNewsResponse(n, loc))
	}
	return out
}

func toNewsResponse(n domain.News, loc *time.Location) models.NewsResponse {
	return models.NewsResponse{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		PublishedAt: commons.FormatDisplayTime(n.PublishedAt, loc),
	}
}

func toContactResponse(m domain.ContactMessage, loc *time.Location) models.ContactResponse {
	return models.ContactResponse{
		ID:         m.ID,
		LastName:   m.LastName,
		MiddleName: m.MiddleName,
		FirstName:  m.FirstName,
		Email:      m.Email,
		Phone:      m.Phone,
		Message:    m.Message,
		CreatedAt:  commons.FormatDisplayTime(m.CreatedAt, loc),
	}
}
