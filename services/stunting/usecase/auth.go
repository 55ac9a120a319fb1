package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stunting/domain"
	"stunting/middleware"
)

type authUC struct {
	userRepo domain.UserRepo
	TimeOut  time.Duration
}

func NewAuthUseCase(repo domain.UserRepo, to time.Duration) domain.AuthUseCase {
	return &authUC{
		userRepo: repo,
		TimeOut:  to,
	}
}

func (auc *authUC) Login(ctx context.Context, data *domain.LoginRequest) (*domain.LoginResponse, error) {
	if err := validateStruct(data); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	user, err := auc.userRepo.FindUserByUsername(ctx, data.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}
