package sqlxrepos

import (
	"context"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/user"
	"github.com/saraswati/sdms/storage/database/dberrors"
)

type userRepository struct{}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (repo userRepository) CreateUser(ctx context.Context, exec core.DBExecutor, usr user.User) error {
	_, err := execAffecting(ctx, exec, builder(exec).Insert("users").
		Columns("user_id", "password_hash", "name", "role").
		Values(usr.ID, usr.PasswordHash, usr.Name, usr.Role))
	if _, ok := dberrors.UniqueViolation(err); ok {
		return core.NewDuplicateKeyError("user_id", usr.ID)
	}
	return err
}

func (repo userRepository) GetUserByID(ctx context.Context, exec core.DBExecutor, id string) (user.User, error) {
	var usr user.User
	err := get(ctx, exec, &usr, builder(exec).
		Select("user_id", "password_hash", "name", "role").
		From("users").
		Where("user_id = ?", id))
	return usr, err
}

func (repo userRepository) UpdateUser(ctx context.Context, exec core.DBExecutor, usr user.User) error {
	n, err := execAffecting(ctx, exec, builder(exec).Update("users").
		SetMap(map[string]interface{}{
			"password_hash": usr.PasswordHash,
			"name":          usr.Name,
			"role":          usr.Role,
		}).
		Where("user_id = ?", usr.ID))
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
