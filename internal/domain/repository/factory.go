package repository

// Factory describes access to the domain repositories backed by one store.
type Factory interface {
	Orders() OrderRepository
	Status() StatusRepository
}
