package v1

import (
	"net/http"

	"github.com/cashlog/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

func RegisterCategoryBreakdownRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCategoryBreakdown)
	r.GET("", GetCategoryBreakdown)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analytics
// @Success		204
// @Router			/v1/category-breakdown [options]
func OptionsCategoryBreakdown(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get category breakdown
// @Description	Returns the sum of expenses per category in a date range, highest first
// @Tags			Analytics
// @Produce		json
// @Success		200			{object}	CategoryBreakdownResponse
// @Failure		400			{object}	CategoryBreakdownResponse
// @Failure		500			{object}	CategoryBreakdownResponse
// @Param			fromDate	query		string	true	"First day of the range, in YYYY-MM-DD format"
// @Param			untilDate	query		string	true	"Last day of the range, in YYYY-MM-DD format"
// @Router			/v1/category-breakdown [get]
func GetCategoryBreakdown(c *gin.Context) {
	var query QueryDateRange
	if err := httputil.BindQuery(c, &query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryBreakdownResponse{
			Error: &s,
		})
		return
	}

	if !query.complete() {
		s := errDateRangeMissing.Error()
		c.JSON(http.StatusBadRequest, CategoryBreakdownResponse{
			Error: &s,
		})
		return
	}

	breakdown, err := services().Analytics.CategoryBreakdown(c.Request.Context(), query.FromDate, query.UntilDate)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBreakdownResponse{
			Error: &s,
		})
		return
	}

	data := newCategoryBreakdown(c, breakdown)
	c.JSON(http.StatusOK, CategoryBreakdownResponse{Data: &data})
}
