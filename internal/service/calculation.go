package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"emicalc/internal/loan"
	"emicalc/internal/model"
	"emicalc/internal/repository"
	"emicalc/internal/storage"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("calculation not found")
	ErrInvalidInput = errors.New("invalid calculation input")
	// ErrExportUnavailable is returned when no object storage is configured.
	ErrExportUnavailable = errors.New("schedule export is not configured")
)

// maxTenureYears caps the accepted repayment period for EMI calculations.
const maxTenureYears = 40

// exportExpiry is how long a presigned export download URL stays valid.
const exportExpiry = 15 * time.Minute

// CalculationInput carries the parameters of a calculation request.
// TenureYears is used in EMI mode, EMI in tenure mode; the other field is ignored.
type CalculationInput struct {
	Mode        model.Mode `json:"mode"`
	Principal   float64    `json:"principal"`
	AnnualRate  float64    `json:"annual_rate"`
	TenureYears int        `json:"tenure_years,omitempty"`
	EMI         float64    `json:"emi,omitempty"`
}

// CalculationResult is the service-level DTO for a calculation: the stored
// record plus its derived amortization schedule and a display summary.
type CalculationResult struct {
	model.Calculation
	Summary  string             `json:"summary"`
	Schedule []loan.Installment `json:"schedule"`
}

// CalculationListResult is the service-level DTO for paginated history.
type CalculationListResult struct {
	Items []model.Calculation `json:"data"`
	Total int                 `json:"total"`
}

// ExportResult describes a CSV schedule export stored in object storage.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CalculationService defines the use cases for loan calculations.
type CalculationService interface {
	// Calculate runs an EMI or tenure calculation, records it in history,
	// and returns the result with its amortization schedule.
	Calculate(ctx context.Context, in CalculationInput) (*CalculationResult, error)

	// Get returns a stored calculation with its schedule recomputed from
	// the stored inputs.
	Get(ctx context.Context, id string) (*CalculationResult, error)

	// List returns calculation history using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*CalculationListResult, error)

	// Delete removes a calculation from history by ID.
	Delete(ctx context.Context, id string) error

	// Export renders the calculation's schedule as CSV, stores it in object
	// storage, and returns a presigned download URL.
	Export(ctx context.Context, id string) (*ExportResult, error)
}

// calculationService is a concrete implementation of CalculationService.
type calculationService struct {
	repo    repository.CalculationRepository
	store   storage.Storage // nil when exports are disabled
	printer *message.Printer
}

// NewCalculationService constructs a new CalculationService.
// store may be nil, in which case Export reports ErrExportUnavailable.
func NewCalculationService(repo repository.CalculationRepository, store storage.Storage) CalculationService {
	return &calculationService{
		repo:    repo,
		store:   store,
		printer: message.NewPrinter(language.English),
	}
}

func (s *calculationService) Calculate(ctx context.Context, in CalculationInput) (*CalculationResult, error) {
	var (
		months float64
		emi    float64
		err    error
	)

	switch in.Mode {
	case model.ModeEMI:
		if in.TenureYears < 1 || in.TenureYears > maxTenureYears {
			return nil, fmt.Errorf("%w: tenure years must be between 1 and %d", ErrInvalidInput, maxTenureYears)
		}
		months = float64(in.TenureYears * 12)
		emi, err = loan.Payment(in.Principal, in.AnnualRate, in.TenureYears*12)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

	case model.ModeTenure:
		emi = in.EMI
		months, err = loan.Months(in.Principal, in.AnnualRate, in.EMI)
		if err != nil {
			if errors.Is(err, loan.ErrPaymentTooLow) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, in.Mode)
	}

	schedule, totalInterest, err := loan.BuildSchedule(in.Principal, in.AnnualRate, emi, months)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	calc := &model.Calculation{
		ID:            uuid.New().String(),
		Mode:          in.Mode,
		Principal:     in.Principal,
		AnnualRate:    in.AnnualRate,
		Months:        months,
		EMI:           emi,
		TotalInterest: totalInterest,
		CreatedAt:     time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, calc)
	if err != nil {
		return nil, fmt.Errorf("save calculation: %w", err)
	}

	return &CalculationResult{
		Calculation: *stored,
		Summary:     s.summary(stored),
		Schedule:    schedule,
	}, nil
}

// Get returns a calculation by ID with its schedule rebuilt on the fly.
func (s *calculationService) Get(ctx context.Context, id string) (*CalculationResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	calc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	schedule, _, err := loan.BuildSchedule(calc.Principal, calc.AnnualRate, calc.EMI, calc.Months)
	if err != nil {
		return nil, fmt.Errorf("rebuild schedule: %w", err)
	}

	return &CalculationResult{
		Calculation: *calc,
		Summary:     s.summary(calc),
		Schedule:    schedule,
	}, nil
}

// List returns paginated history without exposing repository types.
func (s *calculationService) List(ctx context.Context, limit, offset int) (*CalculationListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &CalculationListResult{Items: res.Items, Total: res.Total}, nil
}

// Delete removes a history entry by ID.
func (s *calculationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Export stores the schedule CSV in object storage and presigns a download
// URL. If presigning fails the uploaded object is rolled back so storage
// never accumulates unreachable exports.
func (s *calculationService) Export(ctx context.Context, id string) (*ExportResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if s.store == nil {
		return nil, ErrExportUnavailable
	}

	calc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	schedule, _, err := loan.BuildSchedule(calc.Principal, calc.AnnualRate, calc.EMI, calc.Months)
	if err != nil {
		return nil, fmt.Errorf("rebuild schedule: %w", err)
	}

	body, err := renderScheduleCSV(schedule)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}

	key := "exports/" + calc.ID + ".csv"
	_, err = s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "text/csv",
		Metadata: map[string]string{
			"calculation-id": calc.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, exportExpiry)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &ExportResult{
		Key:       key,
		URL:       url,
		ExpiresAt: time.Now().UTC().Add(exportExpiry),
	}, nil
}

// summary produces the human-readable result line shown in the UI,
// with thousands separators in the en locale.
func (s *calculationService) summary(calc *model.Calculation) string {
	switch calc.Mode {
	case model.ModeTenure:
		return s.printer.Sprintf("Loan closes in %.0f months (%.1f years); total interest %.2f",
			calc.Months, calc.Months/12, calc.TotalInterest)
	default:
		return s.printer.Sprintf("Monthly EMI: %.2f; total interest %.2f",
			calc.EMI, calc.TotalInterest)
	}
}

// renderScheduleCSV writes the amortization schedule as CSV with a header row.
func renderScheduleCSV(schedule []loan.Installment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Month", "EMI", "Principal Paid", "Interest Paid", "Remaining Balance"}); err != nil {
		return nil, err
	}
	for _, row := range schedule {
		rec := []string{
			strconv.Itoa(row.Month),
			strconv.FormatFloat(row.Payment, 'f', 2, 64),
			strconv.FormatFloat(row.PrincipalPaid, 'f', 2, 64),
			strconv.FormatFloat(row.InterestPaid, 'f', 2, 64),
			strconv.FormatFloat(row.Balance, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
