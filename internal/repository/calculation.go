package repository

import (
	"context"

	"emicalc/internal/model"
)

// CalculationRepository defines data access for calculation history.
// No business logic here, strictly persistence operations.
type CalculationRepository interface {
	// Create inserts a new calculation record.
	// The caller provides all fields including ID and CreatedAt.
	// Returns the stored calculation.
	Create(ctx context.Context, calc *model.Calculation) (*model.Calculation, error)

	// FindByID returns a calculation by its ID.
	// Returns sql.ErrNoRows when no row matches.
	FindByID(ctx context.Context, id string) (*model.Calculation, error)

	// List returns a page of calculations ordered newest-first, plus the
	// total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Calculation], error)

	// Delete removes a calculation by ID.
	// Returns sql.ErrNoRows when no row matches.
	Delete(ctx context.Context, id string) error
}
