package v1

import (
	"net/http"

	"github.com/cashlog/backend/internal/httputil"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/service"
	"github.com/gin-gonic/gin"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Categories        string `json:"categories" example:"https://example.com/api/v1/categories"`                // URL of Category collection endpoint
	Tags              string `json:"tags" example:"https://example.com/api/v1/tags"`                            // URL of Tag collection endpoint
	Budgets           string `json:"budgets" example:"https://example.com/api/v1/budgets"`                      // URL of Budget collection endpoint
	Transactions      string `json:"transactions" example:"https://example.com/api/v1/transactions"`            // URL of Transaction collection endpoint
	Months            string `json:"months" example:"https://example.com/api/v1/months/YYYY-MM"`                // URL template of the monthly summary
	CategoryBreakdown string `json:"categoryBreakdown" example:"https://example.com/api/v1/category-breakdown"` // URL of the category breakdown
	Export            string `json:"export" example:"https://example.com/api/v1/export"`                        // URL of the export endpoints
	Sessions          string `json:"sessions" example:"https://example.com/api/v1/sessions/{key}"`              // URL template of session preferences
}

// services returns the services operating on the connected database.
func services() service.Services {
	return service.New(models.DB)
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Categories:        url + "/v1/categories",
			Tags:              url + "/v1/tags",
			Budgets:           url + "/v1/budgets",
			Transactions:      url + "/v1/transactions",
			Months:            url + "/v1/months/YYYY-MM",
			CategoryBreakdown: url + "/v1/category-breakdown",
			Export:            url + "/v1/export",
			Sessions:          url + "/v1/sessions/{key}",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
