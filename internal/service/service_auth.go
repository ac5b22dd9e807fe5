package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the lifecycle
// of access/refresh token pairs. Passwords are hashed with bcrypt; revoked
// refresh tokens are kept in a TokenBlacklist until they expire.
type authService struct {
	userRepository store.UserRepository
	blacklist      store.TokenBlacklist
	validator      validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	// rotateRefreshTokens makes Refresh blacklist the presented refresh
	// token and issue a new one.
	rotateRefreshTokens bool

	hashCost int

	// dummyHash is compared against when the user does not exist, so that
	// unknown usernames take as long as wrong passwords.
	dummyHash func() []byte

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, blacklist store.TokenBlacklist, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.PasswordHashCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:       userRepository,
		blacklist:            blacklist,
		validator:            validators.NewUserValidator(),
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		rotateRefreshTokens:  cfg.RotateRefreshTokens,
		hashCost:             cost,
		dummyHash: sync.OnceValue(func() []byte {
			hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
			return hash
		}),
		logger: logger,
	}
}

// RegisterUser validates req, hashes the password and persists a new active
// user.
//
// Field problems, including a username that is already taken, are returned
// as *validators.ValidationError.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("username", req.Username).Msg("registration data is invalid")
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.hashCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			verr := validators.NewValidationError()
			verr.Add(validators.FieldUsername, validators.MsgUsernameTaken)
			return models.User{}, verr
		}
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Returns ErrCredentialsRequired when either field is empty and
// ErrInvalidCredentials for an unknown user, a wrong password or an inactive
// account.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.User{}, ErrCredentialsRequired
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash(), []byte(creds.Password))
			log.Debug().Str("username", creds.Username).Msg("no user was found")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", creds.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(creds.Password)); err != nil {
		log.Debug().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !foundUser.IsActive {
		log.Debug().Int64("id", foundUser.UserID).Msg("inactive user tried to log in")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateTokenPair issues a fresh access and refresh token for user.
func (a *authService) CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := a.newToken(user.UserID, models.AccessTokenType)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := a.newToken(user.UserID, models.RefreshTokenType)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseAccessToken validates an access token. Refresh tokens are rejected.
// Any validation failure is normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, models.AccessTokenType)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("access token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Refresh exchanges a valid, not blacklisted refresh token for a new access
// token. With rotation enabled the presented token is blacklisted and a new
// refresh token is returned; otherwise the presented one is returned as is.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := a.parseRefreshToken(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Int64("id", token.UserID).Msg("user search by id failed")
		return models.TokenPair{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsActive {
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	access, err := a.newToken(user.UserID, models.AccessTokenType)
	if err != nil {
		return models.TokenPair{}, err
	}

	if !a.rotateRefreshTokens {
		return models.TokenPair{Access: access, Refresh: token}, nil
	}

	if err = a.revoke(ctx, token); err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := a.newToken(user.UserID, models.RefreshTokenType)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// Logout blacklists refreshToken until it expires.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	token, err := a.parseRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	return a.revoke(ctx, token)
}

// Profile returns the user with the given id.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// parseRefreshToken validates signature, issuer, type and expiry and checks
// that the token was not blacklisted.
func (a *authService) parseRefreshToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, models.RefreshTokenType)
	if err != nil {
		log.Debug().Err(err).Msg("refresh token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	blacklisted, err := a.blacklist.Contains(ctx, token.ID)
	if err != nil {
		log.Err(err).Str("jti", token.ID).Msg("blacklist lookup failed")
		return models.Token{}, fmt.Errorf("blacklist lookup failed: %w", err)
	}
	if blacklisted {
		log.Debug().Str("jti", token.ID).Msg("refresh token is blacklisted")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// revoke blacklists token. Losing a race against another revocation of the
// same token is reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) revoke(ctx context.Context, token models.Token) error {
	err := a.blacklist.Add(ctx, models.BlacklistedToken{
		JTI:       token.ID,
		UserID:    token.UserID,
		ExpiresAt: token.Expiry(),
	})
	if err != nil {
		if errors.Is(err, store.ErrTokenAlreadyBlacklisted) {
			return ErrTokenIsExpiredOrInvalid
		}
		logger.FromContext(ctx).Err(err).Str("jti", token.ID).Msg("blacklisting token failed")
		return fmt.Errorf("blacklisting token failed: %w", err)
	}

	return nil
}

func (a *authService) newToken(userID int64, tokenType models.TokenType) (models.Token, error) {
	duration := a.accessTokenDuration
	if tokenType == models.RefreshTokenType {
		duration = a.refreshTokenDuration
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, tokenType, duration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}
