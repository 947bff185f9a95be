package engine

import "boingle/internal/domain"

// Machine - фаза забега. Переход только запрашивается и применяется
// один раз за кадр, поэтому кадр никогда не видит две фазы сразу.
type Machine struct {
	current domain.Phase
	next    *domain.Phase
}

func NewMachine() Machine {
	return Machine{current: domain.PhaseLoading}
}

func (m *Machine) Current() domain.Phase {
	return m.current
}

// Request ставит переход в очередь. Повторный запрос в том же кадре
// заменяет предыдущий.
func (m *Machine) Request(p domain.Phase) {
	m.next = &p
}

// Pending - запрошенная фаза, если есть.
func (m *Machine) Pending() (domain.Phase, bool) {
	if m.next == nil {
		return m.current, false
	}
	return *m.next, true
}

// Advance применяет запрос: возвращает старую и новую фазы.
func (m *Machine) Advance() (from, to domain.Phase, ok bool) {
	if m.next == nil {
		return m.current, m.current, false
	}
	from, to = m.current, *m.next
	m.current = to
	m.next = nil
	return from, to, true
}
