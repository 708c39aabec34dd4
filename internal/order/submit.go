// internal/order/submit.go
package order

import (
	"context"
	"errors"
	"time"

	"stallpos/internal/cart"
	"stallpos/internal/ident"
	"stallpos/internal/logger"
	"stallpos/internal/menu"
)

// ErrEmptyCart rejects submission when no line has qty > 0.
var ErrEmptyCart = errors.New("cart is empty")

// Syncer forwards a finalized order to the external record keeper.
type Syncer interface {
	Send(ctx context.Context, o Order) error
}

// SyncStatus tells the operator what happened after the local save.
type SyncStatus string

const (
	SyncOK      SyncStatus = "synced"
	SyncFailed  SyncStatus = "sync_failed"
	SyncSkipped SyncStatus = "sync_skipped"
)

// Service runs the submission flow: snapshot the cart against the live
// catalog, persist the order to its day's ledger, then attempt the remote
// sync. The local save always completes before the sync attempt starts.
type Service struct {
	Ledger  *Ledger
	Catalog *menu.Catalog
	Cart    *cart.Cart
	Sync    Syncer

	// Now is the submission clock; tests pin it.
	Now func() time.Time
}

// Submit finalizes the till cart. On sync success the cart is cleared; on
// sync failure the order is already durable locally, the cart is left
// untouched for a manual retry, and the caller gets a warning status.
// There is no automatic retry.
func (s *Service) Submit(ctx context.Context) (Order, SyncStatus, error) {
	lines := s.Cart.Lines(s.Catalog)
	if len(lines) == 0 {
		return Order{}, "", ErrEmptyCart
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	o := Order{
		OrderID:         ident.New(),
		CreatedAtMillis: now.UnixMilli(),
	}
	for _, l := range lines {
		o.Items = append(o.Items, Line{
			ID:        l.ItemID,
			Name:      l.Name,
			Price:     l.Price,
			Qty:       l.Qty,
			LineTotal: l.LineTotal,
		})
	}
	o.Total = SumLines(o.Items)

	date := DateOf(o.CreatedAtMillis)
	if err := s.Ledger.Append(date, o); err != nil {
		return Order{}, "", err
	}
	logger.LogInfo("Order %s saved locally for %s (total %.2f)", o.OrderID, date, o.Total)

	if s.Sync == nil {
		s.Cart.Clear()
		return o, SyncSkipped, nil
	}

	if err := s.Sync.Send(ctx, o); err != nil {
		logger.LogWarn("Order %s saved locally but sync failed: %v", o.OrderID, err)
		return o, SyncFailed, nil
	}

	s.Cart.Clear()
	return o, SyncOK, nil
}
