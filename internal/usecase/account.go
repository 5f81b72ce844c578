package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/edsg/edsg/internal/domain"
)

// UserRepository defines persistence for accounts and credentials. The
// password hash never leaves the infra layer except through PasswordHash.
type UserRepository interface {
	Create(ctx context.Context, u domain.User, passwordHash string) error
	Get(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, u domain.User) error
	PasswordHash(ctx context.Context, id string) (string, error)
	SetPasswordHash(ctx context.Context, id string, hash string) error
}

// FavoriteRepository defines persistence for client bookmarks.
type FavoriteRepository interface {
	Add(ctx context.Context, f domain.Favorite) error
	Remove(ctx context.Context, clientID, professionalID string) error
	ListProfessionals(ctx context.Context, clientID string) ([]domain.User, error)
	Exists(ctx context.Context, clientID, professionalID string) (bool, error)
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput updates the user's public profile.
type ProfileInput struct {
	Name      string   `json:"name"`
	Location  *string  `json:"location,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Specialty *string  `json:"specialty,omitempty"`
	BasePrice *float64 `json:"basePrice,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	PhotoURL  *string  `json:"photoUrl,omitempty"`
}

type AccountUsecase struct {
	users     UserRepository
	favorites FavoriteRepository
	directory DirectoryInvalidator
}

func NewAccountUsecase(users UserRepository, favorites FavoriteRepository, directory DirectoryInvalidator) *AccountUsecase {
	return &AccountUsecase{users: users, favorites: favorites, directory: directory}
}

func (uc *AccountUsecase) invalidateDirectory() {
	if uc.directory != nil {
		uc.directory.Invalidate()
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (uc *AccountUsecase) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" {
		return domain.User{}, domain.ValidationError{Field: "name", Message: "is required"}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return domain.User{}, domain.ValidationError{Field: "email", Message: "must be a valid address"}
	}
	if len(in.Password) < 8 {
		return domain.User{}, domain.ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	if _, err := uc.users.GetByEmail(ctx, in.Email); err == nil {
		return domain.User{}, domain.ValidationError{Field: "email", Message: "is already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		IsActive:     true,
		RegisteredAt: time.Now().UTC(),
	}
	if err := uc.users.Create(ctx, user, string(hash)); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login verifies the credentials and returns the account. Deactivated
// accounts cannot sign in.
func (uc *AccountUsecase) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, domain.ValidationError{Field: "email", Message: "invalid credentials"}
	}
	hash, err := uc.users.PasswordHash(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.User{}, domain.ValidationError{Field: "email", Message: "invalid credentials"}
	}
	if !user.IsActive {
		return domain.User{}, domain.PermissionError{Action: "sign in to a deactivated account"}
	}
	return user, nil
}

// UpdateProfile rewrites the user's public fields. Setting a category
// turns the account into a searchable professional.
func (uc *AccountUsecase) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (domain.User, error) {
	if in.Name == "" {
		return domain.User{}, domain.ValidationError{Field: "name", Message: "is required"}
	}
	if in.BasePrice != nil && (*in.BasePrice < 0 || *in.BasePrice > 1000) {
		return domain.User{}, domain.ValidationError{Field: "basePrice", Message: "must be between 0 and 1000"}
	}

	user, err := uc.users.Get(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user.Name = in.Name
	user.Location = in.Location
	user.Category = in.Category
	user.Specialty = in.Specialty
	user.BasePrice = in.BasePrice
	user.Bio = in.Bio
	user.PhotoURL = in.PhotoURL
	user.UpdatedAt = &now

	if err := uc.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	uc.invalidateDirectory()
	return user, nil
}

// ChangePassword swaps the credential after verifying the current one.
func (uc *AccountUsecase) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < 8 {
		return domain.ValidationError{Field: "newPassword", Message: "must be at least 8 characters"}
	}

	hash, err := uc.users.PasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return domain.ValidationError{Field: "currentPassword", Message: "is incorrect"}
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.users.SetPasswordHash(ctx, userID, string(newHash))
}

// Deactivate disables the account after a password confirmation. The row
// stays so ratings and messages keep their author.
func (uc *AccountUsecase) Deactivate(ctx context.Context, userID, password string) error {
	hash, err := uc.users.PasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.ValidationError{Field: "password", Message: "is incorrect"}
	}

	user, err := uc.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.IsActive = false
	if err := uc.users.Update(ctx, user); err != nil {
		return err
	}
	uc.invalidateDirectory()
	return nil
}

// SetPremium flips the premium flag; plan is recorded on upgrade and
// cleared on cancel.
func (uc *AccountUsecase) SetPremium(ctx context.Context, userID string, premium bool, plan string) (domain.User, error) {
	user, err := uc.users.Get(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	user.IsPremium = premium
	if premium {
		if plan == "" {
			plan = "monthly"
		}
		user.PremiumPlan = &plan
	} else {
		user.PremiumPlan = nil
	}
	if err := uc.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	uc.invalidateDirectory()
	return user, nil
}

// Get loads an account by id.
func (uc *AccountUsecase) Get(ctx context.Context, userID string) (domain.User, error) {
	return uc.users.Get(ctx, userID)
}

// AddFavorite bookmarks a professional; adding twice is a no-op.
func (uc *AccountUsecase) AddFavorite(ctx context.Context, clientID, professionalID string) error {
	exists, err := uc.favorites.Exists(ctx, clientID, professionalID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := uc.users.Get(ctx, professionalID); err != nil {
		return err
	}
	return uc.favorites.Add(ctx, domain.Favorite{
		ClientID:       clientID,
		ProfessionalID: professionalID,
		AddedAt:        time.Now().UTC(),
	})
}

// RemoveFavorite drops the bookmark if present.
func (uc *AccountUsecase) RemoveFavorite(ctx context.Context, clientID, professionalID string) error {
	return uc.favorites.Remove(ctx, clientID, professionalID)
}

// Favorites lists the client's bookmarked professionals.
func (uc *AccountUsecase) Favorites(ctx context.Context, clientID string) ([]domain.User, error) {
	return uc.favorites.ListProfessionals(ctx, clientID)
}
