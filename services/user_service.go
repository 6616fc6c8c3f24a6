package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

type UserService struct {
	DB        *gorm.DB
	JWTSecret []byte
	TokenTTL  time.Duration
	Cost      int
	Now       func() time.Time
}

func NewUserService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &UserService{
		DB:        db,
		JWTSecret: []byte(jwtSecret),
		TokenTTL:  tokenTTL,
		Cost:      bcrypt.DefaultCost,
		Now:       time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type ProfileInput struct {
	Name  *string
	Email *string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, invalidInput("name, email and password are required")
	}
	if !validEmail(email) {
		return nil, invalidInput("email %q is not valid", email)
	}
	if len(in.Password) < minPasswordLength {
		return nil, invalidInput("password must be at least %d characters", minPasswordLength)
	}

	db := s.DB.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, storeFailure("check existing user", err)
	}
	if count > 0 {
		return nil, conflict("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.Cost)
	if err != nil {
		return nil, storeFailure("hash password", err)
	}

	user := &models.User{Name: name, Email: email, Password: string(hash)}
	if err := db.Create(user).Error; err != nil {
		return nil, storeFailure("create user", err)
	}
	log.Printf("user %s registered", user.ID)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if IsKind(err, KindNotFound) {
			return nil, unauthorized("invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, unauthorized("invalid credentials")
	}

	token, err := utils.IssueToken(s.JWTSecret, user.ID, user.Email, s.TokenTTL, s.Now())
	if err != nil {
		return nil, storeFailure("generate token", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *UserService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return invalidInput("password must be at least %d characters", minPasswordLength)
	}
	user, err := s.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return unauthorized("incorrect old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.Cost)
	if err != nil {
		return storeFailure("hash password", err)
	}
	if err := s.DB.WithContext(ctx).Model(user).Update("password", string(hash)).Error; err != nil {
		return storeFailure("update password", err)
	}
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*models.User, error) {
	user, err := s.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		updates["name"] = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, invalidInput("email %q is not valid", email)
		}
		if email != user.Email {
			var count int64
			if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
				return nil, storeFailure("check existing user", err)
			}
			if count > 0 {
				return nil, conflict("email already in use")
			}
		}
		updates["email"] = email
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, storeFailure("update profile", err)
	}
	return s.FindUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, storeFailure("retrieve users", err)
	}
	return users, nil
}

// FindUser is the user-existence check consumed by bookings, payments,
// wishlists and reviews.
func (s *UserService) FindUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user not found")
		}
		return nil, storeFailure("retrieve user", err)
	}
	return &user, nil
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user not found")
		}
		return nil, storeFailure("retrieve user", err)
	}
	return &user, nil
}
