package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	config "github.com/examchat/backend/configs"
	"github.com/examchat/backend/database"
	"github.com/examchat/backend/models"
	"github.com/examchat/backend/notifications"
	"github.com/examchat/backend/utils"
)

var validate = validator.New()

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Cannot parse JSON", fiber.StatusBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnprocessableEntity)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, "Failed to hash password", fiber.StatusInternalServerError)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Error(c, "Email already exists", fiber.StatusConflict)
		}
		return utils.Error(c, "Failed to create user", fiber.StatusInternalServerError)
	}

	go notifications.SendEmail(user.Name, user.Email, "Welcome!", "<h1>Welcome!</h1><p>Thank you for registering.</p>")

	return utils.Success(c, user, "User registered successfully!", fiber.StatusCreated)
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Cannot parse JSON", fiber.StatusBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnprocessableEntity)
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return utils.Error(c, "Invalid email or password", fiber.StatusUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return utils.Error(c, "Invalid email or password", fiber.StatusUnauthorized)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return utils.Error(c, "Failed to sign token", fiber.StatusInternalServerError)
	}

	return utils.Success(c, fiber.Map{"token": signed, "user": user}, "Login successful!", fiber.StatusOK)
}

// currentUserID reads the authenticated user id from the verified JWT the
// Protected middleware stored on the context.
func currentUserID(c *fiber.Ctx) uint {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return uint(claims["user_id"].(float64))
}

// parseToken verifies a raw JWT outside the middleware path. The websocket
// endpoint authenticates with it after the upgrade.
func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
