package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Session() SessionRepository
	Assistant() AssistantRepository

	Close() error
}
