package repositories

import "context"

// Repository aggregates the per-collection repositories. The five
// collections are independent; referential integrity between them is the
// services' responsibility, not the store's.
type Repository interface {
	User() UserRepository
	Group() GroupRepository
	Option() OptionRepository
	Upload() UploadRepository
	Chat() ChatRepository

	// WithTransaction runs fn against a repository bound to a single
	// transaction. The allocator's read-modify-write runs under this.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
