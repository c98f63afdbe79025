// Package keymutex даёт мьютекс на ключ: операции с разными ключами не блокируют друг друга.
package keymutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type Map[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

func New[K comparable]() *Map[K] {
	return &Map[K]{entries: make(map[K]*entry)}
}

// Lock захватывает мьютекс ключа и возвращает функцию освобождения.
// Запись удаляется из карты, когда на ключ больше никто не ждёт.
func (m *Map[K]) Lock(key K) func() {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.entries, key)
		}
		m.mu.Unlock()
	}
}

// Len количество ключей, по которым сейчас кто-то держит или ждёт мьютекс.
func (m *Map[K]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
