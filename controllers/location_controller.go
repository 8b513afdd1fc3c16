package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhtran-dev/vietshop/utils"
)

const provincesAPIBase = "https://provinces.open-api.vn/api"

var locationClient = &http.Client{Timeout: 10 * time.Second}

func proxyLocationRequest(c *gin.Context, path string) {
	resp, err := locationClient.Get(provincesAPIBase + path)
	if err != nil {
		utils.LogError("Location API request failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch location data", err.Error())
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.LogError("Failed to read location API response: %v", err)
		utils.InternalServerError(c, "Failed to fetch location data", err.Error())
		return
	}

	c.Data(resp.StatusCode, "application/json; charset=utf-8", body)
}

// ListProvinces proxies the public VN administrative-boundary API
func ListProvinces(c *gin.Context) {
	proxyLocationRequest(c, "/p/")
}

// ListDistricts returns the districts of one province
func ListDistricts(c *gin.Context) {
	proxyLocationRequest(c, fmt.Sprintf("/p/%s?depth=2", c.Param("code")))
}

// ListWards returns the wards of one district
func ListWards(c *gin.Context) {
	proxyLocationRequest(c, fmt.Sprintf("/d/%s?depth=2", c.Param("code")))
}
