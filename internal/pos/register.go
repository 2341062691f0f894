package pos

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"canteen-system/internal/models"
)

var (
	// ErrSessionNotFound is returned for operations on unknown sessions.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMenuItemNotFound is returned when the catalog has no such item.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrMenuItemUnavailable is returned for items flagged unavailable.
	ErrMenuItemUnavailable = errors.New("menu item is not available")

	// ErrInvalidDelta is returned for quantity adjustments other than +-1.
	ErrInvalidDelta = errors.New("quantity delta must be +1 or -1")
)

// Catalog supplies read-only menu item records to the register
type Catalog interface {
	MenuItem(ctx context.Context, id string) (*models.MenuItem, error)
}

// PaymentRecorder persists a finalized sale
type PaymentRecorder interface {
	RecordSale(ctx context.Context, sale *models.Sale) error
}

// View is a read snapshot of one session's cart state
type View struct {
	SessionID string   `json:"session_id"`
	Lines     []Line   `json:"lines"`
	Discount  Discount `json:"discount"`
	Totals    Totals   `json:"totals"`
}

// Register owns all active POS sessions. Every cart mutation happens
// under its lock, mirroring the one-event-at-a-time model of the
// dashboard it serves.
type Register struct {
	mu       sync.Mutex
	sessions map[string]*Cart

	catalog  Catalog
	recorder PaymentRecorder
}

// NewRegister creates a register backed by the given collaborators
func NewRegister(catalog Catalog, recorder PaymentRecorder) *Register {
	return &Register{
		sessions: make(map[string]*Cart),
		catalog:  catalog,
		recorder: recorder,
	}
}

// OpenSession creates a new empty session and returns its ID
func (r *Register) OpenSession() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.sessions[id] = NewCart()
	return id
}

// Snapshot returns the current state of a session
func (r *Register) Snapshot(sessionID string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return r.view(sessionID, cart), nil
}

// AddLine resolves a menu item through the catalog and adds it to the
// session's cart, capturing name and price at this moment.
func (r *Register) AddLine(ctx context.Context, sessionID, menuItemID string) (*View, error) {
	item, err := r.catalog.MenuItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	if !item.Available {
		return nil, ErrMenuItemUnavailable
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	cart.AddLine(item)
	return r.view(sessionID, cart), nil
}

// UpdateQuantity adjusts a line quantity by +-1. Unknown line IDs are
// silently ignored.
func (r *Register) UpdateQuantity(sessionID, lineID string, delta int) (*View, error) {
	if delta != 1 && delta != -1 {
		return nil, ErrInvalidDelta
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	cart.UpdateQuantity(lineID, delta)
	return r.view(sessionID, cart), nil
}

// RemoveLine removes a line from the session's cart
func (r *Register) RemoveLine(sessionID, lineID string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	cart.RemoveLine(lineID)
	return r.view(sessionID, cart), nil
}

// Clear empties the session's cart and resets its discount
func (r *Register) Clear(sessionID string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	cart.Clear()
	return r.view(sessionID, cart), nil
}

// ApplyDiscount parses operator input and replaces the session's
// discount. Invalid input leaves the prior discount untouched.
func (r *Register) ApplyDiscount(sessionID, input string, kind DiscountKind) (*View, error) {
	discount, err := ParseDiscount(input, kind)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	cart.SetDiscount(discount)
	return r.view(sessionID, cart), nil
}

// RemoveDiscount resets the session's discount to its default
func (r *Register) RemoveDiscount(sessionID string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	cart.SetDiscount(DefaultDiscount())
	return r.view(sessionID, cart), nil
}

func (r *Register) view(sessionID string, cart *Cart) *View {
	return &View{
		SessionID: sessionID,
		Lines:     cart.Lines(),
		Discount:  cart.Discount(),
		Totals:    cart.Totals(),
	}
}
