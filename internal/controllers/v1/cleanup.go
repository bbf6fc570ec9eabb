package v1

import (
	"net/http"

	"github.com/cashlog/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// cleanupTables lists all tables in deletion order. Tables must
// come before any of the tables they reference.
var cleanupTables = []string{
	"transaction_tags",
	"budget_categories",
	"transactions",
	"budgets",
	"tags",
	"categories",
	"session_preferences",
}

// @Summary		Delete everything
// @Description	Permanently deletes all resources
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	err = models.WithTransaction(c.Request.Context(), models.DB, func(tx *gorm.DB) error {
		for _, table := range cleanupTables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
