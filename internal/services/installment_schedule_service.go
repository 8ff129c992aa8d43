package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/obra-api/internal/config"
	"github.com/sjperalta/obra-api/internal/models"
)

// InstallmentScheduleService computes the amortization schedule of a contract
type InstallmentScheduleService struct {
	residue string
}

// NewInstallmentScheduleService creates a schedule service. residue is
// config.ResidueNone (every installment gets the same rounded quotient) or
// config.ResidueLast (the final installment absorbs the rounding difference).
func NewInstallmentScheduleService(residue string) *InstallmentScheduleService {
	return &InstallmentScheduleService{residue: residue}
}

// Generate returns contract.Months pending installments ordered by installment number.
// The contract must already have an ID.
func (s *InstallmentScheduleService) Generate(contract *models.Contract) ([]models.Installment, error) {
	if contract.Months <= 0 {
		return nil, fmt.Errorf("months must be greater than 0, got %d", contract.Months)
	}
	cadence, ok := models.CadenceMonths(contract.PlanType)
	if !ok {
		return nil, fmt.Errorf("unknown plan type %q", contract.PlanType)
	}

	remaining := contract.FinancedAmount()
	months := decimal.NewFromInt(int64(contract.Months))
	per := remaining.DivRound(months, 2)

	anchor := DateOnly(contract.Date)
	installments := make([]models.Installment, 0, contract.Months)

	for i := 1; i <= contract.Months; i++ {
		amount := per
		if i == contract.Months && s.residue == config.ResidueLast {
			amount = remaining.Sub(per.Mul(decimal.NewFromInt(int64(contract.Months - 1))))
		}

		installments = append(installments, models.Installment{
			ContractID:    contract.ID,
			ClientID:      contract.ClientID,
			UnitID:        contract.UnitID,
			InstallmentNo: i,
			DueDate:       AddMonths(anchor, i*cadence),
			Amount:        amount,
			PaidAmount:    decimal.Zero,
			Status:        models.InstallmentStatusPending,
		})
	}

	return installments, nil
}

// AddMonths moves t forward n calendar months. When the day does not exist in the
// target month it is clamped to that month's last day (Jan 31 + 1 = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DateOnly keeps the calendar date of t at UTC midnight
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
