package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stunting/domain"
)

type userUseCase struct {
	repo    domain.UserRepo
	TimeOut time.Duration
}

func NewUserUseCase(repo domain.UserRepo, to time.Duration) domain.UserUseCase {
	return &userUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (uu *userUseCase) CreateUser(ctx context.Context, user *domain.User) (*domain.SafeUserData, error) {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Role = strings.ToLower(strings.TrimSpace(user.Role))
	if err := validateStruct(user); err != nil {
		return nil, err
	}
	if user.District != nil {
		d := strings.TrimSpace(*user.District)
		user.District = &d
		if d == "" {
			user.District = nil
		}
	}
	if user.Role == domain.RolePuskesmas && user.District == nil {
		return nil, domain.NewValidationError("district", "District is required for puskesmas users")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	user.Password = string(hashed)

	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	if err := uu.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	safe := user.Safe()
	return &safe, nil
}

func (uu *userUseCase) GetAllUser(ctx context.Context) (*[]domain.SafeUserData, error) {
	ctx, cancel := context.WithTimeout(ctx, uu.TimeOut)
	defer cancel()

	v, err := uu.repo.GetAllUser(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.SafeUserData, 0, len(*v))
	for _, u := range *v {
		users = append(users, u.Safe())
	}
	return &users, nil
}
