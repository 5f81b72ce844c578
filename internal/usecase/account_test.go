package usecase

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/edsg/edsg/internal/domain"
)

type mockUserStore struct {
	users  map[string]domain.User
	hashes map[string]string
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]domain.User{}, hashes: map[string]string{}}
}

func (m *mockUserStore) Create(ctx context.Context, u domain.User, passwordHash string) error {
	m.users[u.ID] = u
	m.hashes[u.ID] = passwordHash
	return nil
}

func (m *mockUserStore) Get(ctx context.Context, id string) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *mockUserStore) Update(ctx context.Context, u domain.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) PasswordHash(ctx context.Context, id string) (string, error) {
	hash, ok := m.hashes[id]
	if !ok {
		return "", domain.NotFoundError{Resource: "user"}
	}
	return hash, nil
}

func (m *mockUserStore) SetPasswordHash(ctx context.Context, id string, hash string) error {
	m.hashes[id] = hash
	return nil
}

type mockFavoriteStore struct {
	favorites map[string]bool
}

func (m *mockFavoriteStore) Add(ctx context.Context, f domain.Favorite) error {
	m.favorites[f.ClientID+"/"+f.ProfessionalID] = true
	return nil
}

func (m *mockFavoriteStore) Remove(ctx context.Context, clientID, professionalID string) error {
	delete(m.favorites, clientID+"/"+professionalID)
	return nil
}

func (m *mockFavoriteStore) ListProfessionals(ctx context.Context, clientID string) ([]domain.User, error) {
	return nil, nil
}

func (m *mockFavoriteStore) Exists(ctx context.Context, clientID, professionalID string) (bool, error) {
	return m.favorites[clientID+"/"+professionalID], nil
}

func accountFixture(t *testing.T) (*AccountUsecase, *mockUserStore, *mockDirectoryInvalidator) {
	t.Helper()
	store := newMockUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	store.users["ann"] = domain.User{ID: "ann", Name: "Ann", Email: "ann@example.com", IsActive: true}
	store.hashes["ann"] = string(hash)

	invalidator := &mockDirectoryInvalidator{}
	favorites := &mockFavoriteStore{favorites: map[string]bool{}}
	return NewAccountUsecase(store, favorites, invalidator), store, invalidator
}

// Directory-visible writes must drop the search cache immediately;
// credential changes must not.
func TestAccountWritesInvalidateDirectory(t *testing.T) {
	ctx := context.Background()
	uc, _, invalidator := accountFixture(t)

	category := "plumbing"
	if _, err := uc.UpdateProfile(ctx, "ann", ProfileInput{Name: "Ann", Category: &category}); err != nil {
		t.Fatal(err)
	}
	if invalidator.calls != 1 {
		t.Errorf("profile update: expected 1 invalidation, got %d", invalidator.calls)
	}

	if _, err := uc.SetPremium(ctx, "ann", true, "monthly"); err != nil {
		t.Fatal(err)
	}
	if invalidator.calls != 2 {
		t.Errorf("premium toggle: expected 2 invalidations, got %d", invalidator.calls)
	}

	if err := uc.ChangePassword(ctx, "ann", "hunter2hunter2", "anotherpassword"); err != nil {
		t.Fatal(err)
	}
	if invalidator.calls != 2 {
		t.Errorf("password change must not touch the directory, got %d calls", invalidator.calls)
	}

	if err := uc.Deactivate(ctx, "ann", "anotherpassword"); err != nil {
		t.Fatal(err)
	}
	if invalidator.calls != 3 {
		t.Errorf("deactivate: expected 3 invalidations, got %d", invalidator.calls)
	}
}

func TestAccountRejectedWriteKeepsCache(t *testing.T) {
	ctx := context.Background()
	uc, _, invalidator := accountFixture(t)

	if _, err := uc.UpdateProfile(ctx, "ann", ProfileInput{Name: ""}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := uc.UpdateProfile(ctx, "ghost", ProfileInput{Name: "Ghost"}); err == nil {
		t.Fatal("expected not found")
	}
	if invalidator.calls != 0 {
		t.Errorf("rejected writes must not drop the cache, got %d calls", invalidator.calls)
	}
}

func TestAdminToggleUserActiveInvalidatesDirectory(t *testing.T) {
	ctx := context.Background()
	store := newMockUserStore()
	store.users["pro"] = domain.User{ID: "pro", Name: "Pro", IsActive: true}
	invalidator := &mockDirectoryInvalidator{}
	uc := NewAdminUsecase(store, nil, nil, invalidator)

	user, err := uc.ToggleUserActive(ctx, "pro")
	if err != nil {
		t.Fatal(err)
	}
	if user.IsActive {
		t.Error("expected the account to be deactivated")
	}
	if invalidator.calls != 1 {
		t.Errorf("expected 1 invalidation, got %d", invalidator.calls)
	}
}
