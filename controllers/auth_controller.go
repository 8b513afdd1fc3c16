package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
	"gorm.io/gorm"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidateEmail(req.Email) {
		utils.BadRequest(c, "Invalid email address", nil)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if req.Phone != "" && !utils.ValidatePhone(req.Phone) {
		utils.BadRequest(c, "Invalid phone number", nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("Email already registered: %s", req.Email)
		utils.Conflict(c, "Email already registered", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Email:    req.Email,
		Password: hashedPassword,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}
	utils.LogInfo("Created user ID: %d", user.ID)

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.Created(c, "Account created successfully", gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

// Login authenticates a user and merges any anonymous session cart
// into the user's cart
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed, email not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed, wrong password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	// Merge the anonymous session cart into the user cart, if one exists
	if token := utils.PeekCartSessionToken(c); token != "" {
		if err := utils.MergeSessionCart(user.ID, token); err != nil {
			utils.LogError("Failed to merge session cart for user ID: %d: %v", user.ID, err)
		} else {
			utils.LogInfo("Merged session cart into user cart for user ID: %d", user.ID)
		}
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("User %d logged in successfully", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"is_admin":  user.IsAdmin,
		},
	})
}

// Logout ends the session. Tokens are stateless, so this only clears
// the cookie session.
func Logout(c *gin.Context) {
	utils.Success(c, "Logged out successfully", nil)
}

// CreateSampleAdmin seeds an admin account on first boot so the
// back-office is reachable
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword("Admin@12345")
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    "admin@vietshop.vn",
		Password: hashedPassword,
		FullName: "VietShop Admin",
		IsAdmin:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil
		}
		return err
	}
	utils.LogInfo("Created sample admin account: %s", admin.Email)
	return nil
}
