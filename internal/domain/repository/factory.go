package repository

// Factory exposes all domain repositories from one storage backend.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Drafts() DraftRepository
}
