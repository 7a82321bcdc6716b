package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/storage"

	"github.com/google/uuid"
)

// CartStore holds the current cart and mirrors every mutation to the local
// store. Lines with the same (productID, purchaseType) are merged into one;
// a quantity of zero or less removes the line.
type CartStore struct {
	mu    sync.Mutex
	local storage.LocalStore
	state model.CartState
}

// NewCartStore restores the persisted cart if one exists. Absent or corrupt
// data yields an empty cart, never an error.
func NewCartStore(ctx context.Context, local storage.LocalStore) *CartStore {
	s := &CartStore{local: local}

	var state model.CartState
	found, err := local.Get(ctx, storage.KeyCart, &state)
	if err != nil {
		log.Printf("cart: restore failed, starting empty: %v", err)
	}
	if found {
		state.TotalItems = countItems(state.Items)
		s.state = state
	}

	return s
}

// State returns a copy of the current cart.
func (s *CartStore) State() model.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// AddItem assigns a fresh id and merges the item into an existing line when
// one matches on (productID, purchaseType), otherwise appends it.
func (s *CartStore) AddItem(ctx context.Context, item model.CartItem) (model.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.ID = uuid.NewString()

	items := copyItems(s.state.Items)
	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].PurchaseType == item.PurchaseType {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	return s.commit(ctx, items)
}

// RemoveItem deletes the line with the given id; unknown ids are a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, id string) (model.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartItem, 0, len(s.state.Items))
	for _, it := range s.state.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}

	return s.commit(ctx, items)
}

// UpdateQuantity replaces the line's quantity; zero or negative removes it.
func (s *CartStore) UpdateQuantity(ctx context.Context, id string, quantity int) (model.CartState, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := copyItems(s.state.Items)
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			break
		}
	}

	return s.commit(ctx, items)
}

// Clear resets the cart and removes the persisted record entirely instead of
// writing an empty one.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.local.Delete(ctx, storage.KeyCart); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.state = model.CartState{}
	return nil
}

// commit swaps in a new state value, recomputes the derived count and
// persists. Callers must hold the lock.
func (s *CartStore) commit(ctx context.Context, items []model.CartItem) (model.CartState, error) {
	next := model.CartState{
		Items:      items,
		TotalItems: countItems(items),
	}

	if err := s.local.Set(ctx, storage.KeyCart, next); err != nil {
		return copyState(s.state), fmt.Errorf("persist cart: %w", err)
	}

	s.state = next
	return copyState(next), nil
}

func countItems(items []model.CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func copyItems(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

func copyState(state model.CartState) model.CartState {
	return model.CartState{
		Items:      copyItems(state.Items),
		TotalItems: state.TotalItems,
	}
}
