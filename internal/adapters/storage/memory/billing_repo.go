package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic/internal/domain/billing"
)

type billingRepo struct {
	mu           sync.RWMutex
	detailsByID  map[string]billing.Detail
	invoicesByID map[string]billing.Invoice
}

func NewBillingRepo() billing.Repository {
	return &billingRepo{
		detailsByID:  make(map[string]billing.Detail),
		invoicesByID: make(map[string]billing.Invoice),
	}
}

func (r *billingRepo) CreateDetail(ctx context.Context, d billing.Detail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("detail id required")
	}
	if _, exists := r.detailsByID[d.ID]; exists {
		return errors.New("detail already exists")
	}
	r.detailsByID[d.ID] = d
	return nil
}

func (r *billingRepo) UpdateDetail(ctx context.Context, d billing.Detail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.detailsByID[d.ID]; !exists {
		return billing.ErrDetailNotFound
	}
	r.detailsByID[d.ID] = d
	return nil
}

func (r *billingRepo) GetDetailByID(ctx context.Context, id string) (billing.Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.detailsByID[id]
	if !ok {
		return billing.Detail{}, billing.ErrDetailNotFound
	}
	return d, nil
}

func (r *billingRepo) ListDetails(ctx context.Context, appointmentID string) ([]billing.Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]billing.Detail, 0)
	for _, d := range r.detailsByID {
		if appointmentID != "" && d.AppointmentID != appointmentID {
			continue
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *billingRepo) DeleteDetail(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.detailsByID[id]; !exists {
		return billing.ErrDetailNotFound
	}
	delete(r.detailsByID, id)
	return nil
}

// CreateInvoice chequea y escribe bajo el mismo lock: un detalle admite
// a lo más una boleta.
func (r *billingRepo) CreateInvoice(ctx context.Context, inv billing.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(inv.ID) == "" {
		return errors.New("invoice id required")
	}
	if _, exists := r.invoicesByID[inv.ID]; exists {
		return errors.New("invoice already exists")
	}
	if r.detailInvoicedLocked(inv.DetailID, inv.ID) {
		return billing.ErrDetailInvoiced
	}
	r.invoicesByID[inv.ID] = inv
	return nil
}

func (r *billingRepo) UpdateInvoice(ctx context.Context, inv billing.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.invoicesByID[inv.ID]; !exists {
		return billing.ErrInvoiceNotFound
	}
	if r.detailInvoicedLocked(inv.DetailID, inv.ID) {
		return billing.ErrDetailInvoiced
	}
	r.invoicesByID[inv.ID] = inv
	return nil
}

func (r *billingRepo) GetInvoiceByID(ctx context.Context, id string) (billing.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.invoicesByID[id]
	if !ok {
		return billing.Invoice{}, billing.ErrInvoiceNotFound
	}
	return inv, nil
}

func (r *billingRepo) ListInvoices(ctx context.Context) ([]billing.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]billing.Invoice, 0, len(r.invoicesByID))
	for _, inv := range r.invoicesByID {
		out = append(out, inv)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *billingRepo) DeleteInvoice(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.invoicesByID[id]; !exists {
		return billing.ErrInvoiceNotFound
	}
	delete(r.invoicesByID, id)
	return nil
}

func (r *billingRepo) detailInvoicedLocked(detailID, exceptInvoiceID string) bool {
	for _, inv := range r.invoicesByID {
		if inv.ID != exceptInvoiceID && inv.DetailID == detailID {
			return true
		}
	}
	return false
}
