package store

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/georgemunganga/stockbook-backend/internal/core/errx"
	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo       Repository
	bcryptCost int
	now        func() time.Time
}

// NewService creates a new store service. A cost below bcrypt.MinCost uses bcrypt.DefaultCost.
func NewService(repo Repository, bcryptCost int) Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{repo: repo, bcryptCost: bcryptCost, now: time.Now}
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Store, error) {
	st := &Store{
		Name:       strings.TrimSpace(req.Name),
		Email:      NormalizeEmail(req.Email),
		PostalCode: strings.TrimSpace(req.PostalCode),
		TaxID:      strings.TrimSpace(req.TaxID),
	}
	switch {
	case st.Name == "":
		return nil, errx.Validation("name is required")
	case st.Email == "":
		return nil, errx.Validation("email is required")
	case req.Password == "":
		return nil, errx.Validation("password is required")
	case st.PostalCode == "":
		return nil, errx.Validation("postal code is required")
	case st.TaxID == "":
		return nil, errx.Validation("tax id is required")
	}
	if err := validateEmail(st.Email); err != nil {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	st.ID = uuid.New()
	st.PasswordHash = hash
	st.CreatedAt = now
	st.UpdatedAt = now

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, translate(err)
	}
	logx.Info().Str("store_id", st.ID.String()).Msg("store registered")
	return st, nil
}

func (s *service) Get(ctx context.Context, storeID string) (*Store, error) {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return nil, errx.NotFound("store not found")
	}
	st, err := s.repo.GetByID(ctx, id)
	return st, translate(err)
}

func (s *service) Update(ctx context.Context, storeID string, req UpdateRequest) (*Store, error) {
	st, err := s.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if st.Name = strings.TrimSpace(*req.Name); st.Name == "" {
			return nil, errx.Validation("invalid name")
		}
	}
	if req.Email != nil {
		st.Email = NormalizeEmail(*req.Email)
		if err := validateEmail(st.Email); err != nil {
			return nil, err
		}
	}
	if req.PostalCode != nil {
		if st.PostalCode = strings.TrimSpace(*req.PostalCode); st.PostalCode == "" {
			return nil, errx.Validation("invalid postal code")
		}
	}
	if req.TaxID != nil {
		if st.TaxID = strings.TrimSpace(*req.TaxID); st.TaxID == "" {
			return nil, errx.Validation("invalid tax id")
		}
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, errx.Validation("invalid password")
		}
		if st.PasswordHash, err = s.hash(*req.Password); err != nil {
			return nil, err
		}
	}
	st.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, translate(err)
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, storeID string) (*Store, error) {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return nil, errx.NotFound("store not found")
	}
	st, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	logx.Info().Str("store_id", storeID).Msg("store deleted")
	return st, nil
}

func (s *service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errx.Validation("password is too long")
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, "<> ") {
		return errx.Validation("invalid email")
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return errx.Wrap(err, errx.KindNotFound, "store not found")
	case errors.Is(err, ErrDuplicateEmail):
		return errx.Wrap(err, errx.KindConflict, "email already registered")
	}
	return err
}
