package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michdebow/stash-tracker/internal/httputil"
	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/services"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/stashes/{id}/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id				path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transactionId	path	string	true	"ID of the transaction"
// @Router			/v1/stashes/{id}/transactions/{transactionId} [options]
func OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Get transactions
// @Description	Returns the ledger of a stash, ordered by creation time
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		404	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			type	query	string	false	"Filter by transaction type"
// @Param			from	query	string	false	"Transactions created at or after this RFC3339 timestamp"
// @Param			until	query	string	false	"Transactions created at or before this RFC3339 timestamp"
// @Param			order	query	string	false	"Sort order by creation time, asc or desc. Defaults to desc."
// @Param			offset	query	int		false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/stashes/{id}/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	transactions, count, err := co.service.Transactions(c.Request.Context(), userID(c), uri.ID.UUID, services.TransactionFilter{
		Type:   models.TransactionType(filter.Type),
		From:   filter.From,
		Until:  filter.Until,
		Order:  filter.Order,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	// Mirrors the default the service applies
	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create transaction
// @Description	Appends a deposit or withdrawal to the ledger of a stash and updates its balance
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		422			{object}	TransactionResponse	"The balance does not cover the withdrawal"
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/stashes/{id}/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var editable TransactionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := co.service.CreateTransaction(c.Request.Context(), userID(c), uri.ID.UUID, services.TransactionCreate{
		Type:        editable.Type,
		Amount:      editable.Amount,
		Description: editable.Description,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction from the ledger and recomputes the stash balance as if it never happened
// @Tags			Transactions
// @Success		204
// @Failure		400				{object}	httpError
// @Failure		404				{object}	httpError
// @Failure		500				{object}	httpError
// @Param			id				path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transactionId	path		string	true	"ID of the transaction"
// @Router			/v1/stashes/{id}/transactions/{transactionId} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	var uri URITransaction
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.service.DeleteTransaction(c.Request.Context(), userID(c), uri.ID.UUID, uri.TransactionID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
