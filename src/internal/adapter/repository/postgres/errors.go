package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

const (
	uniqueViolationCode      = "23505"
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	lockNotAvailableCode     = "55P03"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == uniqueViolationCode
}

// mapConflict tags lock and serialization failures so the ledger engine can retry them.
func mapConflict(err error) error {
	switch pqCode(err) {
	case serializationFailureCode, deadlockDetectedCode, lockNotAvailableCode:
		return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
	default:
		return err
	}
}
