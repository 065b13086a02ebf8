package service

import (
	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
}

func (s *UserService) Create(req CreateUserRequest) (*model.User, error) {
	u := &model.User{Name: req.Name, Email: req.Email}
	if err := s.userRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Get(id uint) (*model.User, error) {
	return s.userRepo.Get(id)
}
