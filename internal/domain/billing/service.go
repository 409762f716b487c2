package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDetailNotFound  = errors.New("appointment detail not found")
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrDetailInvoiced: el detalle ya tiene boleta emitida.
	ErrDetailInvoiced = errors.New("detail already invoiced")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type DetailInput struct {
	AppointmentID string
	ServiceID     string
	Price         int
	Notes         string
}

func (s *Service) CreateDetail(ctx context.Context, in DetailInput) (Detail, error) {
	if strings.TrimSpace(in.AppointmentID) == "" ||
		strings.TrimSpace(in.ServiceID) == "" ||
		in.Price <= 0 {
		return Detail{}, ErrInvalidInput
	}

	now := s.now()
	d := Detail{
		ID:            uuid.NewString(),
		AppointmentID: strings.TrimSpace(in.AppointmentID),
		ServiceID:     strings.TrimSpace(in.ServiceID),
		Price:         in.Price,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateDetail(ctx, d); err != nil {
		return Detail{}, err
	}
	return d, nil
}

type UpdateDetailInput struct {
	ServiceID *string
	Price     *int
	Notes     *string
}

func (s *Service) UpdateDetail(ctx context.Context, id string, in UpdateDetailInput) (Detail, error) {
	d, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	if in.ServiceID != nil {
		if strings.TrimSpace(*in.ServiceID) == "" {
			return Detail{}, ErrInvalidInput
		}
		d.ServiceID = strings.TrimSpace(*in.ServiceID)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return Detail{}, ErrInvalidInput
		}
		d.Price = *in.Price
	}
	if in.Notes != nil {
		d.Notes = strings.TrimSpace(*in.Notes)
	}

	d.UpdatedAt = s.now()
	if err := s.repo.UpdateDetail(ctx, d); err != nil {
		return Detail{}, err
	}
	return d, nil
}

func (s *Service) GetDetailByID(ctx context.Context, id string) (Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Detail{}, ErrDetailNotFound
	}
	return s.repo.GetDetailByID(ctx, id)
}

// ListDetails con appointmentID vacío devuelve todos los detalles.
func (s *Service) ListDetails(ctx context.Context, appointmentID string) ([]Detail, error) {
	return s.repo.ListDetails(ctx, strings.TrimSpace(appointmentID))
}

func (s *Service) DeleteDetail(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrDetailNotFound
	}
	return s.repo.DeleteDetail(ctx, id)
}

type InvoiceInput struct {
	DetailID    string
	PaymentDate string
	Total       int
}

func (s *Service) CreateInvoice(ctx context.Context, in InvoiceInput) (Invoice, error) {
	if strings.TrimSpace(in.DetailID) == "" || in.Total <= 0 {
		return Invoice{}, ErrInvalidInput
	}
	date, err := normalizeDate(in.PaymentDate)
	if err != nil {
		return Invoice{}, err
	}

	// El detalle tiene que existir antes de boletear.
	if _, err := s.repo.GetDetailByID(ctx, strings.TrimSpace(in.DetailID)); err != nil {
		return Invoice{}, ErrDetailNotFound
	}

	now := s.now()
	inv := Invoice{
		ID:          uuid.NewString(),
		DetailID:    strings.TrimSpace(in.DetailID),
		PaymentDate: date,
		Total:       in.Total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

type UpdateInvoiceInput struct {
	PaymentDate *string
	Total       *int
}

func (s *Service) UpdateInvoice(ctx context.Context, id string, in UpdateInvoiceInput) (Invoice, error) {
	inv, err := s.repo.GetInvoiceByID(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	if in.PaymentDate != nil {
		date, err := normalizeDate(*in.PaymentDate)
		if err != nil {
			return Invoice{}, err
		}
		inv.PaymentDate = date
	}
	if in.Total != nil {
		if *in.Total <= 0 {
			return Invoice{}, ErrInvalidInput
		}
		inv.Total = *in.Total
	}

	inv.UpdatedAt = s.now()
	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *Service) GetInvoiceByID(ctx context.Context, id string) (Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Invoice{}, ErrInvoiceNotFound
	}
	return s.repo.GetInvoiceByID(ctx, id)
}

func (s *Service) ListInvoices(ctx context.Context) ([]Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvoiceNotFound
	}
	return s.repo.DeleteInvoice(ctx, id)
}

func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", ErrInvalidInput
	}
	return t.Format("2006-01-02"), nil
}
