package usecase

import (
	"context"
	"errors"
	"time"

	"backend/model"
	"backend/repository"
	"backend/services"
	"backend/utils"
)

type UserService struct {
	UserRepo *repository.UserRepo
}

// CreateUser registers a new account with a hashed password and a generated
// user id. Usernames are unique.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	existing, err := svc.UserRepo.FindUserByUsername(user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("username already exists")
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}

	user.UserID = utils.GenerateUserID()
	user.Password = hashed
	user.CreatedAt = time.Now()

	if _, err := svc.UserRepo.AddUser(ctx, user); err != nil {
		return err
	}

	return nil
}

func (svc *UserService) FindUserByUsername(username string) (*model.User, error) {
	return svc.UserRepo.FindUserByUsername(username)
}

func (svc *UserService) FindUser(userID string) (*model.User, error) {
	return svc.UserRepo.FindUser(userID)
}
