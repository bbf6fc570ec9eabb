package v1

import (
	"net/http"

	"github.com/cashlog/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterMonthRoutes registers the routes for monthly summaries with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", OptionsMonth)
	r.GET("/:month", GetMonth)

	r.OPTIONS("/:month/budget", OptionsMonthBudget)
	r.GET("/:month/budget", GetMonthBudget)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get month
// @Description	Returns the totals of all transactions in a month and how much of the budget for the month has been spent
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthlySummaryResponse
// @Failure		400		{object}	MonthlySummaryResponse
// @Failure		500		{object}	MonthlySummaryResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [get]
func GetMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MonthlySummaryResponse{
			Error: &s,
		})
		return
	}

	summary, err := services().Analytics.MonthlySummary(c.Request.Context(), uri.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlySummaryResponse{
			Error: &s,
		})
		return
	}

	data := newMonthlySummary(c, summary)
	c.JSON(http.StatusOK, MonthlySummaryResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/budget [options]
func OptionsMonthBudget(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get budget for month
// @Description	Returns the budget for a month
// @Tags			Months
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month}/budget [get]
func GetMonthBudget(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{
			Error: &s,
		})
		return
	}

	budget, err := services().Budgets.Get(c.Request.Context(), uri.Month.Year(), int(uri.Month.Month()))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}
