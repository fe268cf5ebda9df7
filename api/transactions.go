package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fintrackpro/FinTrack-Backend/api/apistrings"
	models "github.com/fintrackpro/FinTrack-Backend/api/models"
	basemodels "github.com/fintrackpro/FinTrack-Backend/models"
	"github.com/fintrackpro/FinTrack-Backend/services/transaction"
	"github.com/fintrackpro/FinTrack-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transactions struct {
	server             *Server
	transactionService *transaction.TransactionService
}

func (t Transactions) router(server *Server) {
	t.server = server
	t.transactionService = transaction.NewTransactionService(transaction.NewSQLStore(server.store), server.logger)

	serverGroupV1 := server.router.Group("/api/v1/transactions")
	serverGroupV1.POST("", AuthenticatedMiddleware(), t.createTransaction)
	serverGroupV1.GET("", AuthenticatedMiddleware(), t.getUserTransactions)
	serverGroupV1.GET("recent", AuthenticatedMiddleware(), t.getRecentTransactions)
	serverGroupV1.GET("wallet/:walletId", AuthenticatedMiddleware(), t.getWalletTransactions)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), t.getTransaction)
	serverGroupV1.PUT(":id", AuthenticatedMiddleware(), t.updateTransaction)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), t.deleteTransaction)
	serverGroupV1.POST("transfer", AuthenticatedMiddleware(), t.transfer)
}

func (t *Transactions) createTransaction(ctx *gin.Context) {
	var request models.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	model, err := buildTransactionModel(activeUser.UserID, request.WalletID, request.CategoryID, request.ToWalletID,
		request.Type, request.Amount, request.Currency, request.TransactionDate,
		request.Description, request.Notes, request.ReferenceNumber, request.Payee, request.Tags)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	created, err := t.transactionService.CreateTransaction(ctx, *model)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			t.server.logger.Error("DB Error", err)
		}
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Transaction Created Successfully", models.ToTransactionResponse(created)))
}

func (t *Transactions) getUserTransactions(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transactions, err := t.transactionService.GetUserTransactions(ctx, activeUser.UserID)
	if err != nil {
		t.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transactions Fetched Successfully", models.ToTransactionCollectionResponse(transactions)))
}

func (t *Transactions) getRecentTransactions(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	limit := int64(10)
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 32)
		if err != nil || limit <= 0 {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
			return
		}
	}

	transactions, err := t.transactionService.GetRecentTransactions(ctx, activeUser.UserID, int32(limit))
	if err != nil {
		t.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Recent Transactions Fetched Successfully", models.ToTransactionCollectionResponse(transactions)))
}

func (t *Transactions) getWalletTransactions(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	walletID, err := uuid.Parse(ctx.Param("walletId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	transactions, err := t.transactionService.GetWalletTransactions(ctx, activeUser.UserID, walletID)
	if err != nil {
		t.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Transactions Fetched Successfully", models.ToTransactionCollectionResponse(transactions)))
}

func (t *Transactions) getTransaction(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	found, err := t.transactionService.GetTransaction(ctx, activeUser.UserID, transactionID)
	if err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transaction Fetched Successfully", models.ToTransactionResponse(found)))
}

func (t *Transactions) updateTransaction(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	var request models.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	// Type is intentionally absent from the update request; the service
	// inherits the stored type and rejects attempts to change it.
	model, err := buildTransactionModel(activeUser.UserID, request.WalletID, request.CategoryID, request.ToWalletID,
		"", request.Amount, request.Currency, request.TransactionDate,
		request.Description, request.Notes, request.ReferenceNumber, request.Payee, request.Tags)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}
	model.ID = transactionID

	updated, err := t.transactionService.UpdateTransaction(ctx, *model)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			t.server.logger.Error("DB Error", err)
		}
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transaction Updated Successfully", models.ToTransactionResponse(updated)))
}

func (t *Transactions) deleteTransaction(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	if err := t.transactionService.DeleteTransaction(ctx, activeUser.UserID, transactionID); err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Transaction Deleted Successfully", nil))
}

func (t *Transactions) transfer(ctx *gin.Context) {
	var request models.TransferRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	fromWalletID, err := uuid.Parse(request.FromWalletID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}
	toWalletID, err := uuid.Parse(request.ToWalletID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	transactionDate, err := parseTransactionDate(request.TransactionDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransactionInput))
		return
	}

	created, err := t.transactionService.TransferBetweenWallets(ctx, activeUser.UserID, fromWalletID, toWalletID, amount, request.Description, transactionDate)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			t.server.logger.Error("DB Error", err)
		}
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Transfer Completed Successfully", models.ToTransactionResponse(created)))
}

func buildTransactionModel(userID int64, walletID, categoryID, toWalletID, txType, amount, currency, transactionDate, description, notes, referenceNumber, payee, tags string) (*transaction.TransactionModel, error) {
	parsedWalletID, err := uuid.Parse(walletID)
	if err != nil {
		return nil, err
	}

	model := transaction.TransactionModel{
		UserID:          userID,
		WalletID:        parsedWalletID,
		Type:            transaction.TransactionType(txType),
		Currency:        currency,
		Description:     description,
		Notes:           notes,
		ReferenceNumber: referenceNumber,
		Payee:           payee,
		Tags:            tags,
	}

	if categoryID != "" {
		parsed, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, err
		}
		model.CategoryID = &parsed
	}
	if toWalletID != "" {
		parsed, err := uuid.Parse(toWalletID)
		if err != nil {
			return nil, err
		}
		model.ToWalletID = &parsed
	}

	model.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}

	model.TransactionDate, err = parseTransactionDate(transactionDate)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func parseTransactionDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}
