package store

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginErrorCode string

const (
	LoginErrAccountNotFound  LoginErrorCode = "ACCOUNT_NOT_FOUND"
	LoginErrWrongCredentials LoginErrorCode = "WRONG_CREDENTIALS"
)

// LoginResult is the typed outcome of a login attempt; auth failures are
// values here, never panics or HTTP errors.
type LoginResult struct {
	Success bool           `json:"success"`
	Error   LoginErrorCode `json:"error,omitempty"`
	User    *model.User    `json:"user,omitempty"`
}

type RegisterData struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AuthStore keeps the registered users as an ordered in-memory map keyed by
// email and mirrors every change to the local store. Serialization happens
// only at that boundary; everything else works on the live map.
type AuthStore struct {
	mu      sync.Mutex
	local   storage.LocalStore
	emails  []string // insertion order
	records map[string]*model.UserRecord
	current string // session email, empty when logged out
}

// NewAuthStore restores the registered-users map and the session. Missing or
// corrupt data starts the store empty.
func NewAuthStore(ctx context.Context, local storage.LocalStore) *AuthStore {
	s := &AuthStore{
		local:   local,
		records: make(map[string]*model.UserRecord),
	}

	var stored map[string]model.UserRecord
	found, err := local.Get(ctx, storage.KeyRegisteredUsers, &stored)
	if err != nil {
		log.Printf("auth: restore users failed, starting empty: %v", err)
	}
	if found {
		for email := range stored {
			s.emails = append(s.emails, email)
		}
		// JSON objects carry no order, fall back to a stable one
		sort.Strings(s.emails)
		for _, email := range s.emails {
			rec := stored[email]
			s.records[email] = &rec
		}
	}

	var session model.User
	found, err = local.Get(ctx, storage.KeyCurrentUser, &session)
	if err != nil {
		log.Printf("auth: restore session failed: %v", err)
	}
	if found {
		if _, ok := s.records[session.Email]; ok {
			s.current = session.Email
		}
	}

	return s
}

func (s *AuthStore) Login(ctx context.Context, email, password string) (LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[email]
	if !ok {
		return LoginResult{Error: LoginErrAccountNotFound}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return LoginResult{Error: LoginErrWrongCredentials}, nil
	}

	s.current = email
	if err := s.persistSession(ctx); err != nil {
		return LoginResult{}, err
	}

	user := copyUser(rec.UserData)
	return LoginResult{Success: true, User: &user}, nil
}

// Register returns false when the email is already taken; the existing
// record is left untouched. On success the new user becomes the session.
func (s *AuthStore) Register(ctx context.Context, data RegisterData) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[data.Email]; exists {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	rec := &model.UserRecord{
		PasswordHash: string(hash),
		UserData: model.User{
			ID:             uuid.NewString(),
			Name:           data.Name,
			Email:          data.Email,
			Phone:          data.Phone,
			OrderHistory:   []model.OrderHistoryItem{},
			SavedAddresses: []model.SavedAddress{},
		},
	}

	s.emails = append(s.emails, data.Email)
	s.records[data.Email] = rec
	s.current = data.Email

	if err := s.persistUsers(ctx); err != nil {
		return false, err
	}
	if err := s.persistSession(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// Logout clears the session only; registered users are untouched.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ""
	return s.persistSession(ctx)
}

// CurrentUser returns a copy of the session user, or nil when logged out.
func (s *AuthStore) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return nil
	}
	user := copyUser(rec.UserData)
	return &user
}

// UpdateUser shallow-merges the partial update into the session user.
// Without a session it is a no-op.
func (s *AuthStore) UpdateUser(ctx context.Context, update model.UserUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return nil, nil
	}

	if update.Name != nil {
		rec.UserData.Name = *update.Name
	}
	if update.Phone != nil {
		rec.UserData.Phone = *update.Phone
	}
	if update.Address != nil {
		rec.UserData.Address = *update.Address
	}

	if err := s.persistAll(ctx); err != nil {
		return nil, err
	}

	user := copyUser(rec.UserData)
	return &user, nil
}

// AddOrder prepends the order to the session user's history, most recent
// first. Without a session it logs and does nothing.
func (s *AuthStore) AddOrder(ctx context.Context, order model.OrderHistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		log.Printf("auth: addOrder called without a session, order %s dropped", order.ID)
		return nil
	}

	rec.UserData.OrderHistory = append([]model.OrderHistoryItem{order}, rec.UserData.OrderHistory...)
	return s.persistAll(ctx)
}

func (s *AuthStore) DeleteOrder(ctx context.Context, orderID string) error {
	return s.BulkDeleteOrders(ctx, []string{orderID})
}

// BulkDeleteOrders removes exactly the orders whose ids are listed and
// leaves the rest untouched.
func (s *AuthStore) BulkDeleteOrders(ctx context.Context, orderIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return nil
	}

	drop := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		drop[id] = struct{}{}
	}

	kept := make([]model.OrderHistoryItem, 0, len(rec.UserData.OrderHistory))
	for _, order := range rec.UserData.OrderHistory {
		if _, ok := drop[order.ID]; !ok {
			kept = append(kept, order)
		}
	}
	rec.UserData.OrderHistory = kept

	return s.persistAll(ctx)
}

// AddSavedAddress appends to the address book. The first address added is
// automatically the default; marking a later one default demotes the rest.
func (s *AuthStore) AddSavedAddress(ctx context.Context, addr model.SavedAddress) (*model.SavedAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return nil, nil
	}

	addr.ID = uuid.NewString()
	if len(rec.UserData.SavedAddresses) == 0 {
		addr.IsDefault = true
	} else if addr.IsDefault {
		for i := range rec.UserData.SavedAddresses {
			rec.UserData.SavedAddresses[i].IsDefault = false
		}
	}
	rec.UserData.SavedAddresses = append(rec.UserData.SavedAddresses, addr)

	if err := s.persistAll(ctx); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *AuthStore) DeleteSavedAddress(ctx context.Context, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return nil
	}

	kept := make([]model.SavedAddress, 0, len(rec.UserData.SavedAddresses))
	for _, addr := range rec.UserData.SavedAddresses {
		if addr.ID != addressID {
			kept = append(kept, addr)
		}
	}
	rec.UserData.SavedAddresses = kept

	return s.persistAll(ctx)
}

// SetDefaultAddress makes the target the single default address.
func (s *AuthStore) SetDefaultAddress(ctx context.Context, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return nil
	}

	for i := range rec.UserData.SavedAddresses {
		rec.UserData.SavedAddresses[i].IsDefault = rec.UserData.SavedAddresses[i].ID == addressID
	}

	return s.persistAll(ctx)
}

// ValidateCurrentPassword checks the given password against the session
// user's stored hash.
func (s *AuthStore) ValidateCurrentPassword(password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) == nil
}

func (s *AuthStore) UpdateUserPassword(ctx context.Context, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.sessionRecord()
	if rec == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	rec.PasswordHash = string(hash)

	return s.persistUsers(ctx)
}

// DeleteAccount removes the session user's record entirely and logs out.
func (s *AuthStore) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" {
		return nil
	}

	delete(s.records, s.current)
	kept := make([]string, 0, len(s.emails))
	for _, email := range s.emails {
		if email != s.current {
			kept = append(kept, email)
		}
	}
	s.emails = kept
	s.current = ""

	if err := s.persistUsers(ctx); err != nil {
		return err
	}
	return s.persistSession(ctx)
}

// sessionRecord returns the live record behind the session. Callers must
// hold the lock.
func (s *AuthStore) sessionRecord() *model.UserRecord {
	if s.current == "" {
		return nil
	}
	return s.records[s.current]
}

// persistUsers encodes the whole map. O(n) per change, fine for the handful
// of accounts this store is meant for.
func (s *AuthStore) persistUsers(ctx context.Context) error {
	out := make(map[string]model.UserRecord, len(s.records))
	for email, rec := range s.records {
		out[email] = *rec
	}
	if err := s.local.Set(ctx, storage.KeyRegisteredUsers, out); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

func (s *AuthStore) persistSession(ctx context.Context) error {
	if s.current == "" {
		if err := s.local.Delete(ctx, storage.KeyCurrentUser); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}
	if err := s.local.Set(ctx, storage.KeyCurrentUser, s.records[s.current].UserData); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *AuthStore) persistAll(ctx context.Context) error {
	if err := s.persistUsers(ctx); err != nil {
		return err
	}
	return s.persistSession(ctx)
}

func copyUser(u model.User) model.User {
	out := u
	out.OrderHistory = make([]model.OrderHistoryItem, len(u.OrderHistory))
	copy(out.OrderHistory, u.OrderHistory)
	out.SavedAddresses = make([]model.SavedAddress, len(u.SavedAddresses))
	copy(out.SavedAddresses, u.SavedAddresses)
	return out
}
