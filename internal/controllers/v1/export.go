package v1

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/cashlog/backend/internal/export"
	"github.com/cashlog/backend/internal/httputil"
	"github.com/cashlog/backend/internal/models"
	"github.com/cashlog/backend/internal/types"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// renderer writes the transactions of a date range into a file format.
type renderer func(w io.Writer, from, until types.Date, transactions []models.Transaction) error

// tableRenderer adapts formats that only list the transactions.
func tableRenderer(render func(io.Writer, []models.Transaction) error) renderer {
	return func(w io.Writer, _, _ types.Date, transactions []models.Transaction) error {
		return render(w, transactions)
	}
}

func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/csv", OptionsExport)
	r.GET("/csv", ExportCSV)

	r.OPTIONS("/xlsx", OptionsExport)
	r.GET("/xlsx", ExportXLSX)

	r.OPTIONS("/pdf", OptionsExport)
	r.GET("/pdf", ExportPDF)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export/csv [options]
// @Router			/v1/export/xlsx [options]
// @Router			/v1/export/pdf [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export CSV
// @Description	Returns all transactions in a date range as CSV file, oldest first
// @Tags			Export
// @Produce		text/csv
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			fromDate	query		string	true	"First day of the range, in YYYY-MM-DD format"
// @Param			untilDate	query		string	true	"Last day of the range, in YYYY-MM-DD format"
// @Router			/v1/export/csv [get]
func ExportCSV(c *gin.Context) {
	exportTransactions(c, tableRenderer(export.CSV), contentTypeCSV, "csv")
}

// @Summary		Export XLSX
// @Description	Returns all transactions in a date range as Excel workbook, oldest first
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			fromDate	query		string	true	"First day of the range, in YYYY-MM-DD format"
// @Param			untilDate	query		string	true	"Last day of the range, in YYYY-MM-DD format"
// @Router			/v1/export/xlsx [get]
func ExportXLSX(c *gin.Context) {
	exportTransactions(c, tableRenderer(export.XLSX), contentTypeXLSX, "xlsx")
}

// @Summary		Export PDF
// @Description	Returns all transactions in a date range as printable PDF report with income and expense totals, oldest first
// @Tags			Export
// @Produce		application/pdf
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			fromDate	query		string	true	"First day of the range, in YYYY-MM-DD format"
// @Param			untilDate	query		string	true	"Last day of the range, in YYYY-MM-DD format"
// @Router			/v1/export/pdf [get]
func ExportPDF(c *gin.Context) {
	exportTransactions(c, export.PDF, contentTypePDF, "pdf")
}

// exportTransactions renders the transactions of the requested date range
// with render and sends them as file attachment.
func exportTransactions(c *gin.Context, render renderer, contentType, extension string) {
	var query QueryDateRange
	if err := httputil.BindQuery(c, &query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	if !query.complete() {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errDateRangeMissing.Error(),
		})
		return
	}

	transactions, err := services().Ledger.ListByDateRange(c.Request.Context(), query.FromDate, query.UntilDate)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Render completely before sending so that errors still get a proper response
	var buf bytes.Buffer
	if err := render(&buf, query.FromDate, query.UntilDate, transactions); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: fmt.Errorf("%w: %w", models.ErrGeneral, err).Error(),
		})
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.%s", query.FromDate, query.UntilDate, extension)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
