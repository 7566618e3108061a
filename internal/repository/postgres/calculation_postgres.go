package postgres

import (
	"context"
	"database/sql"

	"emicalc/internal/model"
	"emicalc/internal/repository"
)

// CalculationPostgres is a PostgreSQL implementation of repository.CalculationRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CalculationPostgres struct {
	db *sql.DB
}

// NewCalculationPostgres creates a new CalculationPostgres repository.
func NewCalculationPostgres(db *sql.DB) *CalculationPostgres {
	return &CalculationPostgres{db: db}
}

var _ repository.CalculationRepository = (*CalculationPostgres)(nil)

// Create inserts a new calculation row and returns the stored record.
func (r *CalculationPostgres) Create(ctx context.Context, calc *model.Calculation) (*model.Calculation, error) {
	const q = `
		INSERT INTO calculations (id, mode, principal, annual_rate, months, emi, total_interest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, mode, principal, annual_rate, months, emi, total_interest, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		calc.ID,
		calc.Mode,
		calc.Principal,
		calc.AnnualRate,
		calc.Months,
		calc.EMI,
		calc.TotalInterest,
		calc.CreatedAt,
	)
	var out model.Calculation
	if err := row.Scan(
		&out.ID,
		&out.Mode,
		&out.Principal,
		&out.AnnualRate,
		&out.Months,
		&out.EMI,
		&out.TotalInterest,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single calculation by its ID.
func (r *CalculationPostgres) FindByID(ctx context.Context, id string) (*model.Calculation, error) {
	const q = `
		SELECT id, mode, principal, annual_rate, months, emi, total_interest, created_at
		FROM calculations
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var c model.Calculation
	if err := row.Scan(
		&c.ID,
		&c.Mode,
		&c.Principal,
		&c.AnnualRate,
		&c.Months,
		&c.EMI,
		&c.TotalInterest,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns calculations using LIMIT/OFFSET pagination and a total count.
func (r *CalculationPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Calculation], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM calculations`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page, newest first
	const qList = `
		SELECT id, mode, principal, annual_rate, months, emi, total_interest, created_at
		FROM calculations
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Calculation, 0)
	for rows.Next() {
		var c model.Calculation
		if err := rows.Scan(
			&c.ID,
			&c.Mode,
			&c.Principal,
			&c.AnnualRate,
			&c.Months,
			&c.EMI,
			&c.TotalInterest,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Calculation]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a calculation by ID. Returns sql.ErrNoRows when nothing matched,
// so callers can distinguish a missing row from a successful delete.
func (r *CalculationPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM calculations WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
