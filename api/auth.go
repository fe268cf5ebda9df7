package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fintrackpro/FinTrack-Backend/api/apistrings"
	models "github.com/fintrackpro/FinTrack-Backend/api/models"
	basemodels "github.com/fintrackpro/FinTrack-Backend/models"
	"github.com/fintrackpro/FinTrack-Backend/services/user"
	"github.com/fintrackpro/FinTrack-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Auth struct {
	server      *Server
	userService *user.UserService
}

func (a Auth) router(server *Server) {
	a.server = server
	a.userService = user.NewUserService(
		server.store,
		server.logger,
		TokenController,
		server.mailer,
		server.config,
	)

	serverGroupV1 := server.router.Group("/api/v1/auth")
	serverGroupV1.POST("register", a.register)
	serverGroupV1.POST("login", a.login)
	serverGroupV1.POST("refresh", a.refresh)
	serverGroupV1.GET("me", AuthenticatedMiddleware(), a.profile)
}

func (a *Auth) register(ctx *gin.Context) {
	var request models.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAuthInput))
		return
	}

	result, err := a.userService.Register(ctx, request.Email, request.Password, request.FirstName, request.LastName)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			a.server.logger.Error("DB Error", err)
		}
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	a.cacheSession(ctx, result)
	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("User Registered Successfully",
		models.ToAuthResponse(result.User, result.AccessToken, result.RefreshToken)))
}

func (a *Auth) login(ctx *gin.Context) {
	var request models.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAuthInput))
		return
	}

	result, err := a.userService.Login(ctx, request.Email, request.Password)
	if err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	a.cacheSession(ctx, result)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Login Successful",
		models.ToAuthResponse(result.User, result.AccessToken, result.RefreshToken)))
}

func (a *Auth) refresh(ctx *gin.Context) {
	var request models.RefreshRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAuthInput))
		return
	}

	result, err := a.userService.Refresh(ctx, request.RefreshToken)
	if err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	a.cacheSession(ctx, result)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Token Refreshed Successfully",
		models.ToAuthResponse(result.User, result.AccessToken, result.RefreshToken)))
}

func (a *Auth) profile(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	profile, err := a.userService.GetProfile(ctx, activeUser.UserID)
	if err != nil {
		status, msg := statusForError(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Profile Fetched Successfully", models.ToUserResponse(profile)))
}

func (a *Auth) cacheSession(ctx *gin.Context, result *user.AuthResult) {
	if a.server.sessions == nil {
		return
	}
	ttl := time.Duration(a.server.config.RefreshTokenHours) * time.Hour
	if err := a.server.sessions.CacheSession(ctx, result.User.ID, result.RefreshToken, ttl); err != nil {
		a.server.logger.Error(fmt.Sprintf("failed to cache session for user %v: %v", result.User.ID, err))
	}
}
