package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
)

// ErrInvalidCredentials is returned for an unknown user id and for a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid user id or password")

type (
	Repository interface {
		// CreateUser fails with a core.DuplicateKeyError when the user id is taken.
		CreateUser(ctx context.Context, exec core.DBExecutor, usr User) error
		GetUserByID(ctx context.Context, exec core.DBExecutor, id string) (User, error)
		UpdateUser(ctx context.Context, exec core.DBExecutor, usr User) error
	}

	Service struct {
		db     core.DB
		repo   Repository
		hasher *Hasher
	}
)

func NewService(db core.DB, repo Repository, hasher *Hasher) *Service {
	return &Service{db: db, repo: repo, hasher: hasher}
}

func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	usr := User{
		ID:           nu.UserID,
		Name:         nu.Name,
		Role:         RoleStudent,
		PasswordHash: svc.hasher.Hash(nu.Password),
	}
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		return svc.repo.CreateUser(ctx, tx, usr)
	})
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (svc *Service) Authenticate(ctx context.Context, id, pwd string) (Session, error) {
	usr, err := svc.repo.GetUserByID(ctx, svc.db, core.CleanString(id))
	if err != nil {
		if core.IsNotFound(err) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, errors.Wrap(err, "finding user by ID")
	}
	if !svc.hasher.Check(usr.PasswordHash, pwd) {
		return Session{}, ErrInvalidCredentials
	}
	return Session{
		UserID:    usr.ID,
		Name:      usr.Name,
		Role:      usr.Role,
		StartedAt: core.Now(),
	}, nil
}

func (svc *Service) ChangePassword(ctx context.Context, cp ChangePassword) error {
	if err := cp.Validate(); err != nil {
		return err
	}
	return core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		usr, err := svc.repo.GetUserByID(ctx, tx, cp.UserID)
		if err != nil {
			if core.IsNotFound(err) {
				return ErrInvalidCredentials
			}
			return errors.Wrap(err, "finding user by ID")
		}
		if !svc.hasher.Check(usr.PasswordHash, cp.OldPassword) {
			return ErrInvalidCredentials
		}
		usr.PasswordHash = svc.hasher.Hash(cp.NewPassword)
		return errors.Wrap(svc.repo.UpdateUser(ctx, tx, usr), "updating user")
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, svc.db, core.CleanString(id))
}

// ResetPassword overwrites the password of an existing user without checking the old one.
func (svc *Service) ResetPassword(ctx context.Context, id, pwd string) error {
	return core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		usr, err := svc.repo.GetUserByID(ctx, tx, core.CleanString(id))
		if err != nil {
			return err
		}
		usr.PasswordHash = svc.hasher.Hash(pwd)
		return svc.repo.UpdateUser(ctx, tx, usr)
	})
}

// Save updates or creates a User.
func (svc *Service) Save(ctx context.Context, id, name, pwd string, isAdmin bool) (User, error) {
	id = core.CleanString(id)
	if id == "" {
		return User{}, core.NewFieldError("user_id", "this field is required")
	}
	var usr User
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		var err error
		usr, err = svc.repo.GetUserByID(ctx, tx, id)
		exists := err == nil
		if err != nil && !core.IsNotFound(err) {
			return err
		}
		if !exists {
			usr = User{ID: id, Name: id, Role: RoleStudent}
		}
		if name = core.CleanString(name); name != "" {
			usr.Name = name
		}
		if isAdmin {
			usr.Role = RoleAdmin
		}
		usr.PasswordHash = svc.hasher.Hash(pwd)
		if exists {
			return svc.repo.UpdateUser(ctx, tx, usr)
		}
		return svc.repo.CreateUser(ctx, tx, usr)
	})
	if err != nil {
		return User{}, errors.Wrap(err, "saving user")
	}
	return usr, nil
}
