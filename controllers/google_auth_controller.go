package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func GoogleLogin(c *gin.Context) {
	url := config.GoogleOAuthConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", err.Error())
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		// First Google login creates the account. The password is random
		// so it cannot be derived from the (public) Google profile.
		randomPassword, err := utils.RandomPassword()
		if err != nil {
			utils.InternalServerError(c, "Failed to create account", err.Error())
			return
		}
		hashedPassword, err := utils.HashPassword(randomPassword)
		if err != nil {
			utils.InternalServerError(c, "Failed to hash password", err.Error())
			return
		}

		user = models.User{
			Email:        googleUser.Email,
			FullName:     googleUser.Name,
			GoogleID:     googleUser.ID,
			ProfileImage: googleUser.Picture,
			Password:     hashedPassword,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to create user", err.Error())
			return
		}
		utils.LogInfo("Created user ID: %d from Google login", user.ID)
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted Google login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	// Merge any anonymous session cart before issuing the token
	if sessionToken := utils.PeekCartSessionToken(c); sessionToken != "" {
		if err := utils.MergeSessionCart(user.ID, sessionToken); err != nil {
			utils.LogError("Failed to merge session cart for user ID: %d: %v", user.ID, err)
		}
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	redirectURL := fmt.Sprintf("%s?token=%s&user=%s",
		os.Getenv("FRONTEND_URL"),
		url.QueryEscape(jwtToken),
		url.QueryEscape(fmt.Sprintf(`{"id":%d,"email":"%s","full_name":"%s"}`,
			user.ID, user.Email, user.FullName)))

	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
