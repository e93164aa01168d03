package auth

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// User represents an operator of the admin control API.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Service handles admin-API authentication: a single bcrypt-hashed
// operator credential plus JWT issuance/validation.
type Service struct {
	adminHash []byte
	jwtSecret []byte
}

// NewService creates an authentication service with the admin credential
// hash and JWT signing secret loaded from configuration.
func NewService(adminPasswordHash string, jwtSecret string) *Service {
	var hash []byte
	if adminPasswordHash != "" {
		hash = []byte(adminPasswordHash)
	} else {
		log.Println("[SECURITY WARNING] No ADMIN_PASSWORD_HASH provided - using insecure default password")
		hash, _ = bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	}

	secret := []byte(jwtSecret)
	if len(secret) == 0 {
		log.Println("[SECURITY WARNING] No JWT_SECRET provided - using insecure default secret")
		secret = []byte("super_secret_dev_key_do_not_use_in_prod")
	}

	return &Service{
		adminHash: hash,
		jwtSecret: secret,
	}
}

// Login validates the admin credential and issues a JWT on success.
func (s *Service) Login(username, password string) (string, *User, error) {
	if username != "admin" {
		log.Printf("[WARN] Login failed: unknown operator %q", username)
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		log.Printf("[WARN] Admin login failed (invalid password)")
		return "", nil, errors.New("invalid credentials")
	}

	log.Printf("[INFO] Admin logged in")
	user := &User{ID: "0", Username: "admin", Role: "ADMIN"}
	token, err := s.GenerateToken(user)
	if err != nil {
		log.Printf("[CRITICAL] JWT generation failed: %v", err)
		return "", nil, errors.New("system error")
	}
	return token, user, nil
}

// GenerateToken creates a JWT token for the given user using the service's secret.
func (s *Service) GenerateToken(user *User) (string, error) {
	return GenerateJWTWithSecret(user, s.jwtSecret)
}

// ValidateToken validates a JWT token using the service's secret.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(tokenString, s.jwtSecret)
}
