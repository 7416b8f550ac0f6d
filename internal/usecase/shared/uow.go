package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/session"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Sessions() SessionRepository
	Users() UserRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	BookingByPublicID(ctx context.Context, publicID string) (*BookingSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*CredentialSnapshot, error)
	HasOverlap(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
}

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type PropertySnapshot struct {
	ID                uuid.UUID
	HostID            uuid.UUID
	Name              string
	Address           string
	PricePerNight     float64
	Currency          string
	DiscountThreshold int
}

type BookingSnapshot struct {
	ID         uuid.UUID
	PublicID   string
	UserID     uuid.UUID
	PropertyID uuid.UUID
	Status     booking.Status
	CheckIn    time.Time
	CheckOut   time.Time
}

type CredentialSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         user.Role
	IsActive     bool
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
	// CompleteBefore marks confirmed bookings with check-out strictly before
	// the given day as completed and returns how many rows changed.
	CompleteBefore(ctx context.Context, tx db.DBTX, day time.Time) (int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *session.Session) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	DeleteOwned(ctx context.Context, tx db.DBTX, userID, id uuid.UUID) (int64, error)
	DeleteAllForUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error)
	// DeleteExpired sweeps sessions whose expiry has passed. Expiry-on-contact
	// only catches tokens that come back; this clears the ones that never do.
	DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
	Touch(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	// UpdateProfile changes only the fields given; nil leaves a column as-is.
	UpdateProfile(ctx context.Context, tx db.DBTX, userID uuid.UUID, name, email *string) (int64, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	Delete(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
