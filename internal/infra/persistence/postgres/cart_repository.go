package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// Create inserts a new cart line. The composite unique index on
// (user_id, product_id, size) rejects a second line for the same key.
func (repo *cartRepository) Create(ctx context.Context, line *entity.CartLine) error {
	lineM := fromCartLineDomain(line)

	if err := repo.db.WithContext(ctx).Create(lineM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("cart line already exists for this product and size")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart line")
	}

	line.ID = lineM.ID
	line.CreatedAt = lineM.CreatedAt
	line.UpdatedAt = lineM.UpdatedAt

	return nil
}

// FindLineByKey looks up the merge line for (user, product, size).
func (repo *cartRepository) FindLineByKey(ctx context.Context, userID, productID uuid.UUID, size entity.Size) (*entity.CartLine, error) {
	var lineM model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, string(size)).
		First(&lineM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart line by key")
	}

	return toCartLineDomain(&lineM), nil
}

// FindLineByID retrieves a single cart line regardless of owner. Ownership is
// the caller's concern.
func (repo *cartRepository) FindLineByID(ctx context.Context, lineID uuid.UUID) (*entity.CartLine, error) {
	var lineM model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", lineID).
		First(&lineM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart line by ID")
	}

	return toCartLineDomain(&lineM), nil
}

// FindByUser returns every line in the user's cart, oldest first, with the
// referenced products preloaded.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error) {
	var lineModels []*model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cart lines by user")
	}

	lines := make([]*entity.CartLine, 0, len(lineModels))
	for _, lineM := range lineModels {
		lines = append(lines, toCartLineDomain(lineM))
	}

	return lines, nil
}

// UpdateQuantity sets the quantity on an existing line.
func (repo *cartRepository) UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartLineModel{}).
		Where("id = ?", lineID).
		Update("quantity", quantity)

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
		}

		return errors.Wrap(result.Error, "failed to update cart line quantity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartLineNotFound
	}

	return nil
}

// DeleteLine removes a single cart line by ID.
func (repo *cartRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", lineID).
		Delete(&model.CartLineModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete cart line")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartLineNotFound
	}

	return nil
}

// DeleteByUser empties the user's cart and reports how many lines went away.
// Deleting an already-empty cart is not an error.
func (repo *cartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLineModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to clear cart")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toCartLineDomain converts a GORM CartLineModel to a domain CartLine entity.
func toCartLineDomain(data *model.CartLineModel) *entity.CartLine {
	if data == nil {
		return nil
	}

	return &entity.CartLine{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Size:      entity.Size(data.Size),
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
		Product:   toProductDomain(data.Product),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCartLineDomain converts a domain CartLine entity to a GORM CartLineModel.
func fromCartLineDomain(data *entity.CartLine) *model.CartLineModel {
	if data == nil {
		return nil
	}

	return &model.CartLineModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Size:      string(data.Size),
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
	}
}
