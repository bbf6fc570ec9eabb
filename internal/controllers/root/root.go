// Package root serves the entrypoint of the API.
package root

import (
	"net/http"
	"time"

	"github.com/cashlog/backend/internal/currency"
	"github.com/cashlog/backend/internal/httputil"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links        Links  `json:"links"`                      // Links to the top level endpoints
	BaseCurrency string `json:"baseCurrency" example:"KRW"` // Currency all canonical amounts and totals are reported in
}

type Links struct {
	Docs         string `json:"docs" example:"https://example.com/api/docs/index.html"`           // Swagger API documentation
	Healthz      string `json:"healthz" example:"https://example.com/api/healthz"`                // Database health check
	Version      string `json:"version" example:"https://example.com/api/version"`                // Running cashlog version
	Metrics      string `json:"metrics" example:"https://example.com/api/metrics"`                // Prometheus metrics
	V1           string `json:"v1" example:"https://example.com/api/v1"`                          // Links to the ledger, budgets and analytics endpoints
	CurrentMonth string `json:"currentMonth" example:"https://example.com/api/v1/months/2024-01"` // Summary of the month the request is made in
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		API root
// @Description	Links to the top level endpoints and the summary of the current month
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		BaseCurrency: currency.Base,
		Links: Links{
			Docs:         url + "/docs/index.html",
			Healthz:      url + "/healthz",
			Version:      url + "/version",
			Metrics:      url + "/metrics",
			V1:           url + "/v1",
			CurrentMonth: url + "/v1/months/" + types.MonthOf(time.Now()).String(),
		},
	})
}
