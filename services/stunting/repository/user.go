package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"stunting/domain"
)

const pgUniqueViolation = "23505"

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) domain.UserRepo {
	return &userRepository{
		db: database,
	}
}

func (ur *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	usernameLowered := strings.ToLower(strings.TrimSpace(username))
	err := ur.db.WithContext(ctx).Where("username = ?", usernameLowered).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("could not find user %s: %w", usernameLowered, domain.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	var count int64
	err := ur.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", user.Username).Count(&count).Error
	if err != nil {
		return fmt.Errorf("error checking username: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("username %s: %w", user.Username, domain.ErrDuplicate)
	}

	if err := ur.db.WithContext(ctx).Create(user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("username %s: %w", user.Username, domain.ErrDuplicate)
		}
		return fmt.Errorf("could not create user: %w", err)
	}
	return nil
}

func (ur *userRepository) GetAllUser(ctx context.Context) (*[]domain.User, error) {
	var users []domain.User
	if err := ur.db.WithContext(ctx).Order("user_id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return &users, nil
}
