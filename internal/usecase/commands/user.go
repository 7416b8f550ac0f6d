package commands

import (
	"context"

	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"
)

var (
	ErrUserNotFound          = errs.New("user not found")
	ErrAccountOwnsProperties = errs.New("account still hosts properties")
)

type UserCommands interface {
	// UpdateProfile changes the caller's name and/or email; absent fields
	// keep their current value.
	UpdateProfile(ctx context.Context, actor shared.Principal, req reqdto.UpdateProfileRequest) error
	// DeleteAccount removes the caller's account. Sessions and booking
	// history go with it; accounts that host properties are refused until
	// the listings are reassigned.
	DeleteAccount(ctx context.Context, actor shared.Principal) error
}

type userCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userCommandsImpl{uow: uow}
}

func (u *userCommandsImpl) UpdateProfile(ctx context.Context, actor shared.Principal, req reqdto.UpdateProfileRequest) error {
	changes, err := req.ToDomain()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	var updated int64
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, updateErr := tx.Users().UpdateProfile(ctx, tx.DB(), actor.UserID, changes.Name, changes.Email)
		if updateErr != nil {
			return updateErr
		}
		updated = n
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrEmailTaken
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if updated == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *userCommandsImpl) DeleteAccount(ctx context.Context, actor shared.Principal) error {
	var deleted int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, deleteErr := tx.Users().Delete(ctx, tx.DB(), actor.UserID)
		if deleteErr != nil {
			return deleteErr
		}
		deleted = n
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return ErrAccountOwnsProperties
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}
