package commands

import (
	"context"
	"encoding/json"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPropertyNotFound        = errs.New("property not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingConflict         = errs.New("dates conflict with an existing booking")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	Create(ctx context.Context, actor shared.Principal, req reqdto.CreateBookingRequest) (*queries.BookingView, error)
	// Cancel transitions the booking identified by its shareable reference.
	// Admins may cancel any booking at any time before completion; users may
	// cancel their own while the cancellation window still allows it.
	Cancel(ctx context.Context, actor shared.Principal, publicID string) error
	// CheckAvailability answers whether the property is free for the stay.
	CheckAvailability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	// CompleteExpired is the lazy sweep: confirmed bookings whose check-out
	// has passed become completed. Read paths invoke it before listing.
	CompleteExpired(ctx context.Context) (int64, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	cfg            config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		factory:        factory,
		bookingQueries: bookingQueries,
		clock:          clk,
		cfg:            cfg,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actor shared.Principal, req reqdto.CreateBookingRequest) (*queries.BookingView, error) {
	data, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		prop, readErr := c.loadProperty(ctx, tx.Reads(), data.PropertyID)
		if readErr != nil {
			return readErr
		}

		// Advisory check; the exclusion constraint on the bookings table
		// closes the race between concurrent transactions.
		taken, overlapErr := tx.Reads().HasOverlap(ctx, prop.ID(), data.Stay.CheckIn(), data.Stay.CheckOut())
		if overlapErr != nil {
			return errs.Mark(overlapErr, ErrDatabaseOperationFailed)
		}
		if taken {
			return ErrBookingConflict
		}

		entity, buildErr := c.factory.CreateBooking(prop, actor.UserID, data.Stay, data.Guests, data.Contact, "", "", data.MessageToHost)
		if buildErr != nil {
			return errs.Mark(buildErr, ErrDomainValidation)
		}

		id, createErr := tx.Bookings().Create(ctx, tx.DB(), entity)
		if createErr != nil {
			if infra.IsKind(createErr, infra.KindConflict) {
				return ErrBookingConflict
			}
			if infra.IsKind(createErr, infra.KindForeignKeyViolated) {
				return ErrPropertyNotFound
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		bookingID = id

		return c.enqueueBookingNotification(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the full view from the read store
	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor shared.Principal, publicID string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByPublicID(ctx, publicID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Ownership scoping hides other users' bookings entirely.
		if !actor.IsAdmin() && snap.UserID != actor.UserID {
			return ErrBookingNotFound
		}

		entity, err := c.rebuild(snap)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := entity.Cancel(c.clock.Now(), actor.IsAdmin(), c.cfg.CancelWindow); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), snap.ID, entity.Status()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		payload, err := json.Marshal(map[string]any{
			"booking_id": snap.PublicID,
			"type":       "booking_cancelled",
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return tx.Notifications().CreateJob(ctx, tx.DB(), "email", "booking_cancelled", payload, c.clock.Now())
	})
}

func (c *bookingCommandsImpl) CheckAvailability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	if _, err := booking.NewStayRange(checkIn, checkOut); err != nil {
		return false, errs.Mark(err, ErrDomainValidation)
	}

	if _, err := c.loadProperty(ctx, c.uow.CommandReads(), propertyID); err != nil {
		return false, err
	}

	taken, err := c.uow.CommandReads().HasOverlap(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return !taken, nil
}

func (c *bookingCommandsImpl) CompleteExpired(ctx context.Context) (int64, error) {
	today := clock.Midnight(c.clock.Now().UTC())

	var completed int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, sweepErr := tx.Bookings().CompleteBefore(ctx, tx.DB(), today)
		if sweepErr != nil {
			return sweepErr
		}
		completed = n
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return completed, nil
}

func (c *bookingCommandsImpl) loadProperty(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*property.Property, error) {
	snap, err := reads.PropertyByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	prop, err := property.NewProperty(snap.ID, snap.HostID, snap.Name, snap.Address, snap.PricePerNight, snap.Currency, snap.DiscountThreshold)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return prop, nil
}

func (c *bookingCommandsImpl) rebuild(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	stay, err := booking.NewStayRange(snap.CheckIn, snap.CheckOut)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		snap.ID,
		snap.PublicID,
		snap.UserID,
		snap.PropertyID,
		stay,
		booking.GuestCount{},
		booking.ContactInfo{},
		booking.Breakdown{},
		booking.PaymentInfo{},
		snap.Status,
		"",
		time.Time{},
		time.Time{},
	), nil
}

func (c *bookingCommandsImpl) enqueueBookingNotification(ctx context.Context, tx shared.Tx, entity *booking.Booking) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": entity.PublicID(),
		"type":       "booking_created",
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", "booking_created", payload, c.clock.Now())
}
