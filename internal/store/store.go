package store

import (
	"context"

	"github.com/Carlacms18/movie-catalog/internal/models"
)

// Store is the single entry point to the persistence layer. Two backends
// implement it: the SQLite one (gormstore) and the in-memory one
// (memstore), selected by configuration at startup. All sub-stores share
// one underlying storage handle.
type Store interface {
	// EnsureSchema creates any missing tables. Idempotent; never drops or
	// truncates existing data. Failures wrap ErrSchema.
	EnsureSchema(ctx context.Context) error

	// SeedIfEmpty inserts the initial movie catalog when the movies table
	// holds zero rows, and is a no-op otherwise. Failures wrap ErrSeed.
	SeedIfEmpty(ctx context.Context) error

	Movies() MovieStore
	Accounts() AccountStore
	Sessions() SessionStore
	Favorites() FavoriteStore

	Close() error
}

// MovieStore provides CRUD and filtered search over the catalog.
type MovieStore interface {
	// List returns all movies in id order.
	List(ctx context.Context) ([]models.Movie, error)

	// GetByID returns ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id uint) (*models.Movie, error)

	// Search matches query as a case-insensitive substring of title or
	// director. year filters on exact release year when non-zero. genre,
	// when non-empty, must match one element of the movie's genre list
	// case-insensitively; because genres are stored serialized, that
	// filter runs in memory after the query returns.
	Search(ctx context.Context, query, genre string, year int) ([]models.Movie, error)

	// Add stores the movie under a fresh id (monotonic, never reused) and
	// returns the stored record.
	Add(ctx context.Context, m *models.Movie) (*models.Movie, error)

	// Update merges the non-nil fields of upd onto the existing record.
	// Returns ErrNotFound for an unknown id.
	Update(ctx context.Context, id uint, upd MovieUpdate) (*models.Movie, error)

	// Delete removes the movie and every favorite referencing it in one
	// transaction. It reports whether a row was actually removed.
	Delete(ctx context.Context, id uint) (bool, error)
}

// MovieUpdate carries the fields of a partial movie update. Nil fields
// keep their current value.
type MovieUpdate struct {
	Title    *string
	Year     *int
	Director *string
	Genre    *[]string
	Poster   *string
	Rating   *float64
	Synopsis *string
}

// AccountStore handles registration and credential verification.
type AccountStore interface {
	// Register creates a new user. The uniqueness check and the insert are
	// atomic: of two concurrent registrations with the same email exactly
	// one succeeds and the other gets ErrEmailInUse.
	Register(ctx context.Context, email, password, name string) (*models.User, error)

	// Authenticate verifies email and password against the stored record
	// and returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// CurrentUser resolves the logged-in user from a session token. The
	// active session is the single source of truth for "who is logged
	// in"; there is no current-user singleton. Returns ErrNotFound when
	// the token is unknown or expired.
	CurrentUser(ctx context.Context, token string) (*models.User, error)

	// Users returns all registered users in id order.
	Users(ctx context.Context) ([]models.User, error)
}

// SessionStore issues and validates opaque session tokens.
type SessionStore interface {
	// Create opens a session for the user and returns its token. The
	// session expires 30 days after creation (configurable).
	Create(ctx context.Context, userID uint, deviceInfo, ipAddress string) (string, error)

	// Validate returns the session for the token, updating LastActive as a
	// side effect. ExpiresAt is never extended. Returns ErrNotFound for an
	// unknown or expired token; a failed validation changes nothing.
	Validate(ctx context.Context, token string) (*models.Session, error)

	// End deletes the session. Ending an unknown or already-ended token is
	// not an error.
	End(ctx context.Context, token string) error

	// SweepExpired deletes every session past its expiry and returns how
	// many rows were removed. Safe to run at any time.
	SweepExpired(ctx context.Context) (int64, error)
}

// FavoriteStore manages the user-movie favorites relation.
type FavoriteStore interface {
	// Toggle flips membership of the (userID, movieID) pair and reports
	// whether the movie is favorited afterwards. The flip is a strict XOR
	// even under concurrent toggles of the same pair. Both the user and
	// the movie must exist; otherwise ErrNotFound.
	Toggle(ctx context.Context, userID, movieID uint) (bool, error)

	// List returns the ids of the user's favorited movies.
	List(ctx context.Context, userID uint) ([]uint, error)

	IsFavorite(ctx context.Context, userID, movieID uint) (bool, error)

	// ListMovies returns the user's favorited movies joined against the
	// catalog.
	ListMovies(ctx context.Context, userID uint) ([]models.Movie, error)
}
