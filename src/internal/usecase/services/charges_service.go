package services

import (
	"context"
	"strings"

	"github.com/stimlink/savings-ledger/src/internal/adapter/http/models"
	"github.com/stimlink/savings-ledger/src/internal/commons"
	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type ChargesService struct {
	fees     FeePolicy
	currency string
}

func NewChargesService(fees FeePolicy, currency string) *ChargesService {
	return &ChargesService{fees: fees, currency: strings.TrimSpace(currency)}
}

// GetChargesSummary quotes the withdrawal fee for an amount without touching any account.
func (s *ChargesService) GetChargesSummary(ctx context.Context, req models.GetChargesRequest) (commons.Response[models.GetChargesResponse], error) {
	logger.Info("charges service get charges request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	_ = ctx
	if err := req.Validate(); err != nil {
		logger.Error("charges service get charges validation failed", err, nil)
		return commons.ErrorResponse[models.GetChargesResponse]("validation failed", err.Error()), err
	}

	amount, err := domain.ParsePositiveAmount(req.Amount)
	if err != nil {
		logger.Error("charges service get charges validation failed", err, nil)
		return commons.ErrorResponse[models.GetChargesResponse]("validation failed", err.Error()), err
	}

	fee := s.fees.WithdrawalFee(amount)
	response := models.GetChargesResponse{
		Amount:        amount.String(),
		Currency:      s.currency,
		WithdrawalFee: fee.String(),
		TotalDebited:  s.fees.TotalDebit(amount).String(),
	}

	logger.Info("charges service get charges success", logger.Fields{
		"amount":        response.Amount,
		"withdrawalFee": response.WithdrawalFee,
		"totalDebited":  response.TotalDebited,
	})

	return commons.SuccessResponse("charges fetched successfully", response), nil
}
