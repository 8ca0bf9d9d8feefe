package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// workflow runs one business operation as one transaction and counts it
type workflow struct {
	tx      *repositories.Transactor
	audit   *AuditService
	metrics *metrics.Metrics
}

func newWorkflow(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) workflow {
	return workflow{tx: repos.Tx, audit: audit, metrics: m}
}

func (w workflow) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	err := w.tx.WithinTransaction(ctx, fn)
	w.metrics.ObserveWorkflow(operation, err)
	if err != nil && !isDomainError(err) {
		logger.Error(ctx, "workflow failed", "operation", operation, "error", err)
	}
	return err
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicate) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidState)
}

// duplicateAs names the colliding field when the datastore rejected a write
func duplicateAs(err error, entity, field, value string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.Duplicate(entity, field, value)
	}
	return err
}

// ensureUnique fails with DuplicateError when exists is true
func ensureUnique(exists bool, err error, entity, field, value string) error {
	if err != nil {
		return err
	}
	if exists {
		return domain.Duplicate(entity, field, value)
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, "is required")
	}
	return nil
}

func validateEmail(email string) error {
	if err := required("email", email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Invalid("email", "is not a valid email address")
	}
	return nil
}

func parseDate(field, value string) (datatypes.Date, error) {
	if err := required(field, value); err != nil {
		return datatypes.Date{}, err
	}
	d, err := models.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return datatypes.Date{}, domain.Invalid(field, "must be a date formatted YYYY-MM-DD")
	}
	return d, nil
}

// amountScale matches the decimal(12,2) money columns
const amountScale = 2

func nonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.Invalid(field, "must be greater than or equal to 0")
	}
	return cents(field, amount)
}

func positive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.Invalid(field, "must be greater than 0")
	}
	return cents(field, amount)
}

// cents rejects amounts the database would round on write
func cents(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(amountScale)) {
		return domain.Invalid(field, "must have at most %d decimal places", amountScale)
	}
	return nil
}

// PaymentInput carries payment metadata for premiums and indemnifications
type PaymentInput struct {
	Date      string `json:"date_paiement"`
	Method    string `json:"mode_paiement"`
	Reference string `json:"reference_paiement"`
}

func (in PaymentInput) resolve(ctxToday datatypes.Date) (datatypes.Date, string, string, error) {
	date := ctxToday
	if strings.TrimSpace(in.Date) != "" {
		d, err := parseDate("date_paiement", in.Date)
		if err != nil {
			return datatypes.Date{}, "", "", err
		}
		date = d
	}
	if err := required("mode_paiement", in.Method); err != nil {
		return datatypes.Date{}, "", "", err
	}
	if err := required("reference_paiement", in.Reference); err != nil {
		return datatypes.Date{}, "", "", err
	}
	return date, strings.TrimSpace(in.Method), strings.TrimSpace(in.Reference), nil
}
