package store

import (
	"context"
	"errors"

	"github.com/aklatan/buklat/internal/catalog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrForeignKey    = errors.New("store: foreign key violation")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and to actively stop callers from accidentally opening
// transactions within transactions.
type Store interface {
	Users() Users
	Authors() Authors
	Recommenders() Recommenders
	Books() Books

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed. The commit itself may
	// fail on a concurrent conflicting write; its error (ErrAlreadyExists,
	// ErrForeignKey) surfaces from WithTx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByUsername is used during login and identity resolution.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail backs the registration email pre-check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). The
	// unique constraints on username and email act as the registration
	// backstop; violations come back as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

type Authors interface {
	GetAuthor(ctx context.Context, id int64) (domain.Author, error)

	// ListAuthors returns all authors ordered by ascending id.
	ListAuthors(ctx context.Context) ([]domain.Author, error)

	// CreateAuthor inserts a row and returns it with its assigned id.
	CreateAuthor(ctx context.Context, name string) (domain.Author, error)

	UpdateAuthor(ctx context.Context, a domain.Author) error

	DeleteAuthor(ctx context.Context, id int64) error
}

type Recommenders interface {
	GetRecommender(ctx context.Context, id int64) (domain.Recommender, error)

	// ListRecommenders returns all recommenders ordered by ascending id.
	ListRecommenders(ctx context.Context) ([]domain.Recommender, error)

	CreateRecommender(ctx context.Context, name string) (domain.Recommender, error)

	UpdateRecommender(ctx context.Context, r domain.Recommender) error

	DeleteRecommender(ctx context.Context, id int64) error
}

type Books interface {
	GetBook(ctx context.Context, id int64) (domain.Book, error)

	// ListBooks returns all books ordered by ascending id.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// CreateBook inserts a row and returns it with its assigned id. The
	// schema-level foreign keys back up the service's existence pre-checks.
	CreateBook(ctx context.Context, b domain.Book) (domain.Book, error)

	UpdateBook(ctx context.Context, b domain.Book) error

	DeleteBook(ctx context.Context, id int64) error
}
