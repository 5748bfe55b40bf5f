package repository

import (
	"sync"

	"concesionaria/internal/entities"
)

// MemoryStore keeps bookings in a flat slice and the capacity in a plain int,
// both guarded by one RWMutex. Lookups scan linearly; result order is
// insertion order, which keeps queries deterministic.
type MemoryStore struct {
	mu    sync.RWMutex
	state memoryState
}

func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{state: memoryState{capacity: capacity}}
}

func (s *MemoryStore) Insert(b entities.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Insert(b)
}

func (s *MemoryStore) FindOverlapping(w entities.TimeWindow) ([]entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindOverlapping(w)
}

func (s *MemoryStore) FindWithin(w entities.TimeWindow) ([]entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindWithin(w)
}

func (s *MemoryStore) FindByVIN(vin string) ([]entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindByVIN(vin)
}

func (s *MemoryStore) GetCapacity() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GetCapacity()
}

func (s *MemoryStore) SetCapacity(capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SetCapacity(capacity)
}

// Atomically holds the write lock for the whole of fn, handing fn an
// unlocked view of the same state so the inner calls do not deadlock.
func (s *MemoryStore) Atomically(fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// memoryState is the unguarded data. It implements Store so Atomically can
// hand it out as the transaction view.
type memoryState struct {
	bookings []entities.Booking
	capacity int
}

func (s *memoryState) Insert(b entities.Booking) error {
	s.bookings = append(s.bookings, b)
	return nil
}

func (s *memoryState) FindOverlapping(w entities.TimeWindow) ([]entities.Booking, error) {
	var found []entities.Booking
	for _, b := range s.bookings {
		if b.Window.Overlaps(w) {
			found = append(found, b)
		}
	}
	return found, nil
}

func (s *memoryState) FindWithin(w entities.TimeWindow) ([]entities.Booking, error) {
	var found []entities.Booking
	for _, b := range s.bookings {
		if b.Window.Within(w) {
			found = append(found, b)
		}
	}
	return found, nil
}

func (s *memoryState) FindByVIN(vin string) ([]entities.Booking, error) {
	var found []entities.Booking
	for _, b := range s.bookings {
		if b.Vehicle.VIN == vin {
			found = append(found, b)
		}
	}
	return found, nil
}

func (s *memoryState) GetCapacity() (int, error) {
	return s.capacity, nil
}

func (s *memoryState) SetCapacity(capacity int) error {
	s.capacity = capacity
	return nil
}

func (s *memoryState) Atomically(fn func(tx Store) error) error {
	// Already inside the outer lock.
	return fn(s)
}
