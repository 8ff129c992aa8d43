package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrTxClosed is returned when a unit of work is used after commit or rollback
var ErrTxClosed = errors.New("transaction already closed")

// UnitOfWork is one open database transaction. Every repository it hands out
// writes through that transaction; nothing is visible to other readers until Commit.
type UnitOfWork interface {
	Contracts() ContractRepository
	Units() UnitRepository
	Installments() InstallmentRepository
	Audits() AuditRepository
	Commit() error
	Rollback() error
}

// TxManager opens units of work
type TxManager interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by gorm transactions
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Begin(ctx context.Context) (UnitOfWork, error) {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormUnitOfWork{tx: tx}, nil
}

type gormUnitOfWork struct {
	tx     *gorm.DB
	closed bool
}

func (u *gormUnitOfWork) Contracts() ContractRepository {
	return NewContractRepository(u.tx)
}

func (u *gormUnitOfWork) Units() UnitRepository {
	return NewUnitRepository(u.tx)
}

func (u *gormUnitOfWork) Installments() InstallmentRepository {
	return NewInstallmentRepository(u.tx)
}

func (u *gormUnitOfWork) Audits() AuditRepository {
	return NewAuditRepository(u.tx)
}

func (u *gormUnitOfWork) Commit() error {
	if u.closed {
		return ErrTxClosed
	}
	u.closed = true
	return u.tx.Commit().Error
}

func (u *gormUnitOfWork) Rollback() error {
	if u.closed {
		return ErrTxClosed
	}
	u.closed = true
	return u.tx.Rollback().Error
}
