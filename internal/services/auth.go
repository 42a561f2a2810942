package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/mail"
	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 30 * time.Minute

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	mailer    mail.Sender
	baseURL   string
}

func NewAuthService(db *gorm.DB, jwtSecret string, mailer mail.Sender, frontendBaseURL string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), mailer: mailer, baseURL: frontendBaseURL}
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) GenerateToken(userID uint, role models.UserRole) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (uint, models.UserRole, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("invalid user_id in token")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", errors.New("invalid role in token")
	}

	return uint(userIDFloat), models.UserRole(role), nil
}

// ForgotPassword stores a hashed single-use reset token and mails the link.
// Always succeeds from the caller's perspective so the endpoint does not
// leak which emails have accounts.
func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	rawToken := hex.EncodeToString(raw)
	tokenHash := sha256Hex(rawToken)
	expires := time.Now().Add(resetTokenTTL)

	err := s.db.Model(&user).Updates(map[string]interface{}{
		"reset_token_hash":       tokenHash,
		"reset_token_expires_at": expires,
	}).Error
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/login/forgot-password?token=%s", s.baseURL, rawToken)
	s.mailer.Send(mail.Message{
		To:      user.Email,
		Subject: "Passwort zurücksetzen",
		Body:    "Hallo " + user.Name + ",\n\nüber folgenden Link kannst du dein Passwort zurücksetzen:\n" + link + "\n\nDer Link ist 30 Minuten gültig.",
	})
	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	tokenHash := sha256Hex(token)

	var user models.User
	err := s.db.
		Where("reset_token_hash = ? AND reset_token_expires_at > ?", tokenHash, time.Now()).
		First(&user).Error
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":          string(hash),
		"reset_token_hash":       nil,
		"reset_token_expires_at": nil,
	}).Error
}

func sha256Hex(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// generatePassword returns a short random password for freshly created
// accounts; the user is expected to change it after first login.
func generatePassword(length int) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	enc := base64.RawURLEncoding.EncodeToString(raw)
	if length > len(enc) {
		length = len(enc)
	}
	return enc[:length], nil
}
