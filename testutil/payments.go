package testutil

import (
	"context"
	"fmt"
	"sort"

	"styledecor/database"
	"styledecor/models"
)

// PaymentStore implements paymentRepo.PaymentRepository, enforcing transactionId uniqueness on insert.
type PaymentStore struct{ s *Store }

func (s *Store) Payments() *PaymentStore { return &PaymentStore{s: s} }

func (p *PaymentStore) Insert(_ context.Context, payment *models.Payment) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.takeFailure("payments.Insert"); err != nil {
		return err
	}
	for _, existing := range p.s.payments {
		if existing.TransactionID == payment.TransactionID {
			return fmt.Errorf("failed to record payment %s: %w", payment.TransactionID, database.ErrDuplicate)
		}
	}
	if payment.ID == "" {
		payment.ID = newID()
	}
	p.s.payments[payment.ID] = *payment
	return nil
}

func (p *PaymentStore) GetByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.takeFailure("payments.GetByTransactionID"); err != nil {
		return nil, err
	}
	for _, payment := range p.s.payments {
		if payment.TransactionID == transactionID {
			return &payment, nil
		}
	}
	return nil, database.ErrNotFound
}

func (p *PaymentStore) ListByEmail(_ context.Context, email string) ([]models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	out := []models.Payment{}
	for _, payment := range p.s.payments {
		if email == "" || payment.CustomerEmail == email {
			out = append(out, payment)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (p *PaymentStore) Summary(ctx context.Context, email string) (models.RevenueSummary, error) {
	list, _ := p.ListByEmail(ctx, email)
	var summary models.RevenueSummary
	for _, payment := range list {
		summary.TotalRevenue += payment.Amount
		summary.PaymentCount++
	}
	return summary, nil
}

func (p *PaymentStore) Monthly(ctx context.Context) ([]models.MonthlyRevenue, error) {
	list, _ := p.ListByEmail(ctx, "")
	byMonth := map[string]*models.MonthlyRevenue{}
	for _, payment := range list {
		month := payment.PaidAt.UTC().Format("2006-01")
		row, ok := byMonth[month]
		if !ok {
			row = &models.MonthlyRevenue{Month: month}
			byMonth[month] = row
		}
		row.Revenue += payment.Amount
		row.Payments++
	}
	out := []models.MonthlyRevenue{}
	for _, row := range byMonth {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// Count returns the number of recorded payments.
func (p *PaymentStore) Count() int {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return len(p.s.payments)
}
