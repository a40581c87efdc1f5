package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminsuite/internal/core/apperror"
	appctx "adminsuite/internal/core/context"
	"adminsuite/internal/core/id"
	"adminsuite/internal/domain/audit"
	"adminsuite/pkg/logger"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// EntityType names users in the audit log.
const EntityType = "user"

// DefaultHistoryLimit caps History when the caller passes no limit.
const DefaultHistoryLimit = 50

// CreateInput describes a new account.
type CreateInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       *string
	Address     *string
	Role        Role     // RoleUser when empty
	Permissions []string // role defaults apply when empty
	IsActive    *bool    // active when nil
}

// UpdateInput changes an account. Nil fields keep their current value.
type UpdateInput struct {
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	Phone       *string
	Address     *string
	Role        *Role
	Permissions []string
	IsActive    *bool
}

// NormalizeEmail trims and lowercases an address. Emails are unique
// case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create adds an account. A taken email is a conflict.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	email := NormalizeEmail(in.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	first, err := requiredName("firstName", in.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := requiredName("lastName", in.LastName)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, apperror.NewInvalidInput("role", role)
	}
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u := &User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Phone:        optional(in.Phone),
		Address:      optional(in.Address),
		Role:         role,
		Permissions:  permissions(in.Permissions),
		IsActive:     in.IsActive == nil || *in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, email, id.ID{}); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return err
		}
		return s.record(ctx, audit.ActionCreate, u.ID, nil, u, false)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created",
		"user_id", u.ID,
		"role", u.Role)
	return u, nil
}

// Update applies in to an existing account.
func (s *Service) Update(ctx context.Context, userID id.ID, in UpdateInput) (*User, error) {
	var hash string
	if in.Password != nil {
		var err error
		if hash, err = s.hashPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, apperror.NewInvalidInput("role", *in.Role)
	}

	var updated *User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		before, next := *current, *current

		if in.Email != nil {
			email := NormalizeEmail(*in.Email)
			if err := validateEmail(email); err != nil {
				return err
			}
			if email != current.Email {
				if err := s.ensureEmailFree(ctx, email, userID); err != nil {
					return err
				}
			}
			next.Email = email
		}
		if in.FirstName != nil {
			if next.FirstName, err = requiredName("firstName", *in.FirstName); err != nil {
				return err
			}
		}
		if in.LastName != nil {
			if next.LastName, err = requiredName("lastName", *in.LastName); err != nil {
				return err
			}
		}
		if in.Phone != nil {
			next.Phone = optional(in.Phone)
		}
		if in.Address != nil {
			next.Address = optional(in.Address)
		}
		if in.Role != nil {
			next.Role = *in.Role
		}
		if in.Permissions != nil {
			next.Permissions = permissions(in.Permissions)
		}
		if in.IsActive != nil {
			next.IsActive = *in.IsActive
		}
		if hash != "" {
			next.PasswordHash = hash
		}
		next.UpdatedAt = s.now().UTC()

		if err := s.repo.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return s.record(ctx, audit.ActionUpdate, userID, &before, &next, hash != "")
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user updated", "user_id", userID)
	return updated, nil
}

// Delete removes an account. The caller cannot delete their own account.
func (s *Service) Delete(ctx context.Context, userID id.ID) error {
	if appctx.GetUserID(ctx) == userID.String() {
		return apperror.NewValidation("cannot delete your own account").
			WithDetail("id", userID.String())
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		before := *current
		if err := s.repo.Delete(ctx, userID); err != nil {
			return err
		}
		return s.record(ctx, audit.ActionDelete, userID, &before, nil, false)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}

// History returns the recorded changes of a user, newest first. Deleted
// users keep their history.
func (s *Service) History(ctx context.Context, userID id.ID, limit int) ([]audit.Entry, error) {
	if s.audit == nil {
		return []audit.Entry{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var out []audit.Entry
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.audit.History(ctx, EntityType, userID.String(), limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("user history: %w", err)
	}
	return out, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, self id.ID) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case apperror.IsNotFound(err):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID != self:
		return apperror.NewDuplicate(EntityType, "email", email)
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength)).
			WithDetail("field", "password")
	}
	if s.hash == nil {
		return "", apperror.NewInternal(errors.New("users: password hasher not configured"))
	}
	return s.hash(password)
}

// record writes an audit entry when a log is configured and something
// changed. Password hashes never reach the log; a changed password shows up
// as a redacted field.
func (s *Service) record(ctx context.Context, action audit.Action, userID id.ID, before, after *User, passwordChanged bool) error {
	if s.audit == nil {
		return nil
	}

	var from, to any
	if before != nil {
		from = before
	}
	if after != nil {
		to = after
	}
	changes, err := audit.Diff(from, to, "updatedAt", "lastLogin")
	if err != nil {
		return err
	}
	if passwordChanged {
		changes["password"] = audit.FieldChange{Redacted: true}
	}
	if len(changes) == 0 {
		return nil
	}
	raw, err := changes.JSON()
	if err != nil {
		return err
	}

	return s.audit.Record(ctx, audit.Entry{
		EntityType: EntityType,
		EntityID:   userID.String(),
		Action:     action,
		UserID:     appctx.GetUserID(ctx),
		Changes:    raw,
		CreatedAt:  s.now().UTC(),
	})
}

func validateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return apperror.NewInvalidInput("email", email)
	}
	return nil
}

func requiredName(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperror.NewValidation(field+" is required").WithDetail("field", field)
	}
	return v, nil
}

// optional trims v and maps blanks to nil.
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func permissions(p []string) []string {
	out := make([]string, 0, len(p))
	for _, v := range p {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
