package repository

import "gorm.io/gorm"

// TxManager is the unit-of-work boundary. Write methods on the
// repositories accept the *gorm.DB handle the callback receives, so the
// caller controls commit/rollback across entities.
type TxManager interface {
	Do(fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}
