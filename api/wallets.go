package api

import (
	"net/http"

	"github.com/fintrackpro/FinTrack-Backend/api/apistrings"
	models "github.com/fintrackpro/FinTrack-Backend/api/models"
	basemodels "github.com/fintrackpro/FinTrack-Backend/models"
	"github.com/fintrackpro/FinTrack-Backend/services/wallet"
	"github.com/fintrackpro/FinTrack-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Wallets struct {
	server        *Server
	walletService *wallet.WalletService
}

func (w Wallets) router(server *Server) {
	w.server = server
	w.walletService = wallet.NewWalletService(wallet.NewSQLStore(server.store), server.logger)

	serverGroupV1 := server.router.Group("/api/v1/wallets")
	serverGroupV1.POST("", AuthenticatedMiddleware(), w.createWallet)
	serverGroupV1.GET("", AuthenticatedMiddleware(), w.getUserWallets)
	serverGroupV1.GET(":id", AuthenticatedMiddleware(), w.getWallet)
	serverGroupV1.PATCH(":id", AuthenticatedMiddleware(), w.updateWallet)
	serverGroupV1.POST(":id/default", AuthenticatedMiddleware(), w.setDefaultWallet)
	serverGroupV1.DELETE(":id", AuthenticatedMiddleware(), w.deleteWallet)
}

func (w *Wallets) createWallet(ctx *gin.Context) {
	var request models.CreateWalletRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	initial, err := parseOptionalAmount(request.InitialBalance)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}
	limit, err := parseOptionalAmount(request.CreditLimit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	created, err := w.walletService.CreateWallet(ctx, wallet.WalletModel{
		UserID:              activeUser.UserID,
		Name:                request.Name,
		Description:         request.Description,
		Type:                wallet.WalletType(request.Type),
		Currency:            request.Currency,
		InitialBalance:      initial,
		CreditLimit:         limit,
		Color:               request.Color,
		Icon:                request.Icon,
		IsDefault:           request.IsDefault,
		IsExcludedFromTotal: request.ExcludeFromTotal,
		DisplayOrder:        request.DisplayOrder,
		Notes:               request.Notes,
		BankName:            request.BankName,
		AccountNumber:       request.AccountNumber,
		AccountType:         request.AccountType,
		InvestmentType:      request.InvestmentType,
		InstitutionName:     request.InstitutionName,
	})
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			w.server.logger.Error("DB Error", err)
		}
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("User Wallet Created Successfully", models.ToWalletResponse(created)))
}

func (w *Wallets) getUserWallets(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	wallets, err := w.walletService.GetUserWallets(ctx, activeUser.UserID)
	if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("User Wallets Fetched Successfully", models.ToWalletCollectionResponse(wallets)))
}

func (w *Wallets) getWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	found, err := w.walletService.GetWallet(ctx, activeUser.UserID, walletID)
	if err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Fetched Successfully", models.ToWalletResponse(found)))
}

func (w *Wallets) updateWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	var request models.UpdateWalletRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	update := wallet.UpdateWalletRequest{
		Name:            request.Name,
		Description:     request.Description,
		Color:           request.Color,
		Icon:            request.Icon,
		Notes:           request.Notes,
		DisplayOrder:    request.DisplayOrder,
		IncludeInTotal:  request.IncludeInTotal,
		SetDefault:      request.SetDefault,
		BankName:        request.BankName,
		AccountNumber:   request.AccountNumber,
		AccountType:     request.AccountType,
		InvestmentType:  request.InvestmentType,
		InstitutionName: request.InstitutionName,
	}
	if request.CreditLimit != nil {
		limit, err := decimal.NewFromString(*request.CreditLimit)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
			return
		}
		update.CreditLimit = &limit
	}

	updated, err := w.walletService.UpdateWallet(ctx, activeUser.UserID, walletID, update)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			w.server.logger.Error("DB Error", err)
		}
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Updated Successfully", models.ToWalletResponse(updated)))
}

func (w *Wallets) setDefaultWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	updated, err := w.walletService.SetDefaultWallet(ctx, activeUser.UserID, walletID)
	if err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Default Wallet Updated Successfully", models.ToWalletResponse(updated)))
}

func (w *Wallets) deleteWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	if err := w.walletService.DeleteWallet(ctx, activeUser.UserID, walletID); err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Deleted Successfully", nil))
}

func parseOptionalAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
