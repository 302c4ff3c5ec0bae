package service

import (
	"fmt"
	"strings"

	"urban-explorer/database"
	"urban-explorer/database/model"
	"urban-explorer/logger"
	"urban-explorer/util/crypto"

	"gorm.io/gorm"
)

// UserService covers credentials checking, sign-up and the admin account
// management operations.
type UserService struct {
	db             *gorm.DB
	settingService *SettingService
}

func NewUserService(db *gorm.DB, settingService *SettingService) *UserService {
	return &UserService{db: db, settingService: settingService}
}

// CheckUser verifies credentials and returns the account, or nil when the
// email is unknown or the password does not match.
func (s *UserService) CheckUser(email, password string) *model.User {
	user := &model.User{}
	err := s.db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}
	return user
}

// SignUp creates a `user` role account while the sign-up gate is open.
func (s *UserService) SignUp(email, password string) (*model.User, error) {
	allowed, err := s.settingService.GetAllowSignup()
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrSignupClosed
	}
	return s.createUser(email, password, model.RoleUser)
}

func (s *UserService) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser is the admin path; unlike SignUp it ignores the sign-up gate
// and may assign any valid role.
func (s *UserService) CreateUser(email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.createUser(email, password, role)
}

func (s *UserService) createUser(email, password, role string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	var count int64
	if err := s.db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUserRole(id int, role string) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	user := &model.User{}
	err := s.db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account. Spots created by the account keep their
// denormalized email snapshot.
func (s *UserService) DeleteUser(id int) error {
	result := s.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword sets a new password for the account, used by the CLI.
func (s *UserService) ResetPassword(email, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password required", ErrValidation)
	}
	user := &model.User{}
	err := s.db.Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.db.Save(user).Error
}
