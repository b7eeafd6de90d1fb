package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"
	"backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService จัดการ business logic ของการ login/register
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register สร้าง user ใหม่ ถ้า email ซ้ำจะได้ Conflict
func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	return s.create(username, email, password, entity.RoleUser)
}

// CreateAdmin เหมือน Register แต่บังคับ role เป็น ADMIN (เรียกได้เฉพาะ admin)
func (s *AuthService) CreateAdmin(username, email, password string) (*entity.User, error) {
	return s.create(username, email, password, entity.RoleAdmin)
}

func (s *AuthService) create(username, email, password string, role entity.Role) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: strings.TrimSpace(username),
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}

	// ให้ unique index ตัดสิน email ซ้ำ (กันสอง request ชนกัน)
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email is already in use")
		}
		return nil, err
	}
	slog.Info("user registered", "email", user.Email, "role", user.Role)
	return user, nil
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, apperr.Invalid("invalid email or password")
	}

	// เทียบรหัสผ่าน
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Invalid("invalid email or password")
	}

	// ออก token
	token, err := utils.GenerateToken(user.ID, string(user.Role), s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}

	slog.Info("user logged in", "email", user.Email)
	return token, user, nil
}

// GetProfile
func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}
