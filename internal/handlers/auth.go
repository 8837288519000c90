package handlers

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/devsocial/backend/pkg/mailer"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Bearer tokens are valid for 7 days; reset codes for 5 minutes.
const (
	tokenValidity     = 7 * 24 * time.Hour
	resetCodeValidity = 5 * time.Minute
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	mailer         mailer.Mailer
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, m mailer.Mailer, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		mailer:         m,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/forgot-password", h.ForgotPassword)
	g.POST("/reset-password", h.ResetPassword)
}

// Register handles account creation and returns a signed token alongside the
// public user fields
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	taken, err := h.userRepository.IsTaken(req.Username, req.Email)
	if err != nil {
		log.Printf("register: uniqueness check failed: %v", err)
		return httperr.Internal()
	}
	if taken {
		return httperr.Conflict("Username or email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register: failed to hash password: %v", err)
		return httperr.Internal()
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		log.Printf("register: failed to create user: %v", err)
		return httperr.Internal()
	}

	token, err := h.generateJWT(user)
	if err != nil {
		log.Printf("register: failed to sign token: %v", err)
		return httperr.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// Login verifies credentials and returns a signed token with the public user
// fields
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.Unauthorized("Invalid email or password")
		}
		log.Printf("login: lookup failed: %v", err)
		return httperr.Internal()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return httperr.Unauthorized("Invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		log.Printf("login: failed to sign token: %v", err)
		return httperr.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// ForgotPassword generates an 8-digit reset code, persists it with a short
// expiry and emails it. Responding 404 for unknown emails leaks account
// existence; kept as a documented trade-off.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("Email not found")
		}
		log.Printf("forgot-password: lookup failed: %v", err)
		return httperr.Internal()
	}

	code, err := generateResetCode()
	if err != nil {
		log.Printf("forgot-password: failed to generate code: %v", err)
		return httperr.Internal()
	}

	expires := time.Now().Add(resetCodeValidity)
	if err := h.userRepository.SetResetCode(req.Email, code, expires); err != nil {
		log.Printf("forgot-password: failed to store code: %v", err)
		return httperr.Internal()
	}

	if err := h.mailer.SendResetCode(req.Email, code); err != nil {
		log.Printf("forgot-password: %v", err)
		return httperr.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Code sent"})
}

// ResetPassword applies a valid reset code: hashes the new password, stores
// it and clears the reset fields in one statement
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("reset-password: failed to hash password: %v", err)
		return httperr.Internal()
	}

	ok, err := h.userRepository.ResetPassword(req.Email, req.Code, string(hashedPassword), time.Now())
	if err != nil {
		log.Printf("reset-password: update failed: %v", err)
		return httperr.Internal()
	}
	if !ok {
		return httperr.BadRequest("Invalid or expired code")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}

// generateJWT signs a token carrying the user's identity
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// generateResetCode draws an 8-digit numeric code from crypto/rand
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(10000000))).String(), nil
}
