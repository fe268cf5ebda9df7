package user

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	db "github.com/fintrackpro/FinTrack-Backend/db/sqlc"
	"github.com/fintrackpro/FinTrack-Backend/services/monitoring/logging"
	"github.com/fintrackpro/FinTrack-Backend/services/notification"
	"github.com/fintrackpro/FinTrack-Backend/utils"
	"github.com/lib/pq"
)

type UserService struct {
	store    *db.Store
	logger   *logging.Logger
	tokens   *utils.JWTToken
	mailer   *notification.Plunk
	config   *utils.Config
}

func NewUserService(store *db.Store, logger *logging.Logger, tokens *utils.JWTToken, mailer *notification.Plunk, config *utils.Config) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
		tokens: tokens,
		mailer: mailer,
		config: config,
	}
}

type AuthResult struct {
	User         db.User
	AccessToken  string
	RefreshToken string
}

func (u *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	hashed, err := utils.GenerateHashValue(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser, err := u.store.CreateUser(ctx, db.CreateUserParams{
		Email:          email,
		HashedPassword: hashed,
		FirstName:      firstName,
		LastName:       lastName,
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			// 23505 --> Violated Unique Constraints
			return nil, NewUserError(ErrUserAlreadyExists, email, err)
		}
		return nil, err
	}

	// Fire-and-forget; registration must not fail on email problems.
	go func() {
		if err := u.mailer.SendWelcomeEmail(newUser.Email, newUser.FirstName); err != nil {
			u.logger.Error(fmt.Sprintf("failed to send welcome email to user %v: %v", newUser.ID, err))
		}
	}()

	return u.issueTokens(ctx, newUser)
}

func (u *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	existing, err := u.store.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewUserError(ErrInvalidCredentials, email)
	} else if err != nil {
		return nil, err
	}

	if err := utils.VerifyHashValue(password, existing.HashedPassword); err != nil {
		return nil, NewUserError(ErrInvalidCredentials, email)
	}

	return u.issueTokens(ctx, existing)
}

// Refresh rotates the refresh token: the presented one is revoked and a new
// pair is issued.
func (u *UserService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	stored, err := u.store.GetRefreshTokenByHash(ctx, hashToken(refreshToken))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewUserError(ErrInvalidRefresh, "")
	} else if err != nil {
		return nil, err
	}

	if stored.ExpiresAt.Before(time.Now()) {
		return nil, NewUserError(ErrInvalidRefresh, "")
	}

	owner, err := u.store.GetUserByID(ctx, stored.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewUserError(ErrUserNotFound, "")
	} else if err != nil {
		return nil, err
	}

	if err := u.store.RevokeRefreshToken(ctx, stored.ID); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, owner)
}

func (u *UserService) GetProfile(ctx context.Context, userID int64) (*db.User, error) {
	existing, err := u.store.GetUserByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewUserError(ErrUserNotFound, "")
	} else if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (u *UserService) issueTokens(ctx context.Context, usr db.User) (*AuthResult, error) {
	access, err := u.tokens.CreateToken(utils.TokenObject{
		UserID: usr.ID,
		Email:  usr.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refresh := utils.GenerateRandomString(64)
	_, err = u.store.CreateRefreshToken(ctx, db.CreateRefreshTokenParams{
		UserID:    usr.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(time.Hour * time.Duration(u.config.RefreshTokenHours)),
	})
	if err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &AuthResult{
		User:         usr,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Only a hash of the refresh token ever reaches storage.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
