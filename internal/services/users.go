package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/logger"
	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

const minPasswordLen = 8

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *UserService) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	fields := map[string]string{}
	switch {
	case in.Username == "":
		fields["username"] = "This field is required."
	case len(in.Username) > 150 || !usernameRe.MatchString(in.Username):
		fields["username"] = "Enter a valid username. Letters, digits and @/./+/-/_ only."
	}
	if len(in.Password) < minPasswordLen {
		fields["password"] = "This password is too short. It must contain at least 8 characters."
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields(fields)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Validation("username", "A user with that username already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Avatar:    utils.GetRandomEmoji(),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.DomainEvents.WithLabelValues("user_registered").Inc()
	logger.L().Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid username or password")
		}
		return nil, apperr.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.Unauthorized("invalid username or password")
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, apperr.FromDB(err, "user", id)
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, apperr.FromDB(err, "user", username)
	}
	return &user, nil
}
