package commands

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/session"
	"stayhub/internal/domain/user"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/password"
	"stayhub/internal/pkg/useragent"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken           = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrSessionNotFound      = errs.New("session not found")
	ErrAuthenticationFailed = errs.New("authentication failed")
)

// LoginResult carries the freshly issued session. The session id doubles as
// the opaque bearer token handed to the client.
type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	SessionID uuid.UUID
	ExpiresAt time.Time
}

func (r LoginResult) Token() string {
	return r.SessionID.String()
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (uuid.UUID, error)
	Login(ctx context.Context, req reqdto.LoginRequest, userAgent, ip string) (*LoginResult, error)
	Logout(ctx context.Context, actor shared.Principal) error
	LogoutAll(ctx context.Context, actor shared.Principal) (int64, error)
	RevokeSession(ctx context.Context, actor shared.Principal, sessionID uuid.UUID) error
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.SessionConfig
}

func NewAuthCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.SessionConfig) AuthCommands {
	return &authCommandsImpl{
		uow:   uow,
		clock: clk,
		cfg:   cfg,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (uuid.UUID, error) {
	data, err := req.ToDomain()
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	hash, err := password.HashPassword(data.Password.Value())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	newUser := user.NewUser(data.Name, data.Email, hash, user.RoleUser)

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Users().Create(ctx, tx.DB(), newUser)
		if createErr != nil {
			return createErr
		}
		userID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return userID, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest, userAgent, ip string) (*LoginResult, error) {
	email, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	creds, err := a.validateCredentials(ctx, email.Value(), req.Password)
	if err != nil {
		return nil, err
	}

	ua := useragent.Parse(userAgent)
	newSession, err := session.NewSession(creds.ID, ua.Device, ua.Browser, ip, a.clock.Now(), a.cfg.TTL)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if createErr := tx.Sessions().Create(ctx, tx.DB(), newSession); createErr != nil {
			return createErr
		}
		if updateErr := tx.Users().UpdateLastLogin(ctx, tx.DB(), creds.ID); updateErr != nil {
			slog.Warn("failed to update last login", "user_id", creds.ID, "error", updateErr.Error())
			// Continue without failing - this is not critical
		}
		// Opportunistic sweep: expiry-on-contact never reaches sessions whose
		// owners stopped coming back, so logins clear them out.
		if _, sweepErr := tx.Sessions().DeleteExpired(ctx, tx.DB(), a.clock.Now()); sweepErr != nil {
			slog.Warn("failed to sweep expired sessions", "error", sweepErr.Error())
		}
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &LoginResult{
		UserID:    creds.ID,
		Role:      creds.Role,
		SessionID: newSession.ID(),
		ExpiresAt: newSession.ExpiresAt(),
	}, nil
}

func (a *authCommandsImpl) Logout(ctx context.Context, actor shared.Principal) error {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sessions().Delete(ctx, tx.DB(), actor.SessionID)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (a *authCommandsImpl) LogoutAll(ctx context.Context, actor shared.Principal) (int64, error) {
	var revoked int64
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, deleteErr := tx.Sessions().DeleteAllForUser(ctx, tx.DB(), actor.UserID)
		if deleteErr != nil {
			return deleteErr
		}
		revoked = n
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return revoked, nil
}

func (a *authCommandsImpl) RevokeSession(ctx context.Context, actor shared.Principal, sessionID uuid.UUID) error {
	var deleted int64
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, deleteErr := tx.Sessions().DeleteOwned(ctx, tx.DB(), actor.UserID, sessionID)
		if deleteErr != nil {
			return deleteErr
		}
		deleted = n
		return nil
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (a *authCommandsImpl) validateCredentials(ctx context.Context, email, plaintext string) (*shared.CredentialSnapshot, error) {
	creds, err := a.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}

	if !creds.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(creds.PasswordHash, plaintext); err != nil {
		return nil, ErrInvalidCredentials
	}

	return creds, nil
}
