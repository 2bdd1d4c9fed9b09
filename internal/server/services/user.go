package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/dmitrijs2005/shoppinglist/internal/dbx"
	"github.com/dmitrijs2005/shoppinglist/internal/server/auth"
	"github.com/dmitrijs2005/shoppinglist/internal/server/models"
	"github.com/dmitrijs2005/shoppinglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shoppinglist/internal/server/validation"
)

const (
	MsgCredentialsRequired = "you need to enter both the email and the password"
	MsgInvalidEmail        = "invalid email format"
	MsgEmailTaken          = "user with email '%s' already exists"
	MsgUnknownEmail        = "user with email '%s' doesn't exist"
	MsgWrongPassword       = "Wrong password for the given email address"
	MsgUnknownUserID       = "user with that ID not found!"
	MsgResetFieldsRequired = "the fields 'password' and 'confirm password' are required"
	MsgPasswordsDiffer     = "the given passwords don't match"
)

// TokenIssuer mints a bearer token for a user.
type TokenIssuer interface {
	IssueNow(userID int64) (string, error)
}

// UserService provides account operations:
// - Register: create users
// - Login: verify credentials and mint a bearer token
// - Logout: revoke the presented token
// - ResetPassword: replace the password and revoke the presented token
type UserService struct {
	db          dbx.DBTX
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
}

func NewUserService(db dbx.DBTX, tx dbx.Transactor, m repomanager.RepositoryManager,
	hasher auth.PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{db: db, tx: tx, repomanager: m, hasher: hasher, tokens: tokens}
}

// checkCredentials normalizes email and applies the checks shared by
// Register and Login.
func checkCredentials(email, password string) (string, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", missingInput(MsgCredentialsRequired)
	}
	if !validation.ValidEmail(email) {
		return "", malformedInput(MsgInvalidEmail)
	}
	return email, nil
}

// Register creates a user. The email must be free before the password
// policy is consulted.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email, err := checkCredentials(email, password)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return conflictf(MsgEmailTaken, email)
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error searching user: %w", err)
		}

		if err := validation.CheckPassword(password); err != nil {
			return malformedInput(err.Error())
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}

		user, err = repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return conflictf(MsgEmailTaken, email)
		}
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password and returns a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email, err := checkCredentials(email, password)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil, forbiddenf(MsgUnknownEmail, email)
	}
	if err != nil {
		return "", nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, forbidden(MsgWrongPassword)
	}

	token, err := s.tokens.IssueNow(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout revokes token, which must be the one the caller authenticated
// with.
func (s *UserService) Logout(ctx context.Context, userID int64, token string) (*models.User, error) {
	var user *models.User
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.getUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := s.repomanager.RevokedTokens(tx).Revoke(ctx, token); err != nil {
			return fmt.Errorf("error revoking token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword sets a new password for the authenticated user and
// revokes the token used for the request in the same transaction.
func (s *UserService) ResetPassword(ctx context.Context, userID int64, token, password, confirm string) (*models.User, error) {
	if password == "" || confirm == "" {
		return nil, missingInput(MsgResetFieldsRequired)
	}
	if password != confirm {
		return nil, malformedInput(MsgPasswordsDiffer)
	}
	if err := validation.CheckPassword(password); err != nil {
		return nil, malformedInput(err.Error())
	}

	var user *models.User
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.getUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, userID, hash); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		user.PasswordHash = hash

		if err := s.repomanager.RevokedTokens(tx).Revoke(ctx, token); err != nil {
			return fmt.Errorf("error revoking token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IsRevoked lets the auth gate consult the revocation store without
// knowing about repositories.
func (s *UserService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.repomanager.RevokedTokens(s.db).IsRevoked(ctx, token)
}

func (s *UserService) getUser(ctx context.Context, db dbx.DBTX, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(db).GetByID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, forbidden(MsgUnknownUserID)
	}
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}
