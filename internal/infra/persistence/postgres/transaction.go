package postgres

import (
	"context"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements repository.TransactionManager on top of
// GORM's Transaction helper.
type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{
		db: db,
	}
}

// Execute runs fn inside a single database transaction. Repositories handed
// out by the factory all share the transaction's connection, so an error from
// fn rolls everything back. Errors returned by fn pass through unchanged so
// callers keep their taxonomy; only commit failures get wrapped here.
func (manager *gormTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	var fnErr error
	err := manager.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(newGormRepositoryFactory(tx))

		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return fnErr
		}

		return domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	return nil
}

// gormRepositoryFactory builds repositories bound to one *gorm.DB, which may
// be either the root connection or an open transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func newGormRepositoryFactory(tx *gorm.DB) repository.RepositoryFactory {
	return &gormRepositoryFactory{tx: tx}
}

func (factory *gormRepositoryFactory) CartRepo() repository.CartRepository {
	return NewCartRepository(factory.tx)
}

func (factory *gormRepositoryFactory) OrderRepo() repository.OrderRepository {
	return NewOrderRepository(factory.tx)
}

func (factory *gormRepositoryFactory) ProductRepo() repository.ProductRepository {
	return NewProductRepository(factory.tx)
}

func (factory *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(factory.tx)
}
