// Package physics - граница с физическим движком.
//
// Ядро игры видит физику только через Engine: поток событий начала/конца
// контакта и запрос пересечений. Arena - эталонная реализация для
// headless-режима, тестов и реплеев.
package physics

import (
	"math"
	"sort"

	"boingle/internal/domain"
)

// Engine - контракт физического движка.
type Engine interface {
	// Step продвигает мир на dt и возвращает события начала/конца контактов.
	Step(w *domain.World, dt float64) []domain.CollisionEvent
	// QueryOverlaps возвращает сущности, чьи коллайдеры пересекают форму.
	QueryOverlaps(w *domain.World, shape domain.Shape, pos domain.Vec2, rot float64, filter Filter) []domain.EntityID
	// Reset забывает все активные контакты (перезапуск уровня).
	Reset()
}

// Filter - фильтр для QueryOverlaps
type Filter struct {
	Exclude []domain.EntityID
	// Include, если задан, пропускает только подходящие сущности.
	Include func(e *domain.Entity) bool
}

func (f Filter) accepts(e *domain.Entity) bool {
	for _, id := range f.Exclude {
		if id == e.ID {
			return false
		}
	}
	return f.Include == nil || f.Include(e)
}

// Settings - параметры эталонного движка
type Settings struct {
	Gravity    float64 // ускорение вниз, ед/с²
	SleepSpeed float64
	SleepTime  float64
}

type pairKey [2]domain.EntityID

// Arena - простой 2D движок: динамические круги (мячи) против статических
// кругов и OBB. Мячи друг с другом не сталкиваются.
type Arena struct {
	settings Settings
	contacts map[pairKey]struct{}
}

func NewArena(s Settings) *Arena {
	return &Arena{
		settings: s,
		contacts: make(map[pairKey]struct{}),
	}
}

func (a *Arena) Reset() {
	a.contacts = make(map[pairKey]struct{})
}

// Step интегрирует мячи, разрешает проникновения и сравнивает
// множество контактов с прошлым шагом. Одна пара даёт не больше одного
// события за шаг, сколько бы точек контакта у неё ни было.
func (a *Arena) Step(w *domain.World, dt float64) []domain.CollisionEvent {
	var dynamic, static []*domain.Entity
	w.Each(func(e *domain.Entity) {
		if e.Body == nil || e.Preview != nil {
			return
		}
		if e.Body.Dynamic {
			dynamic = append(dynamic, e)
		} else {
			static = append(static, e)
		}
	})

	current := make(map[pairKey]struct{}, len(a.contacts))
	for _, e := range dynamic {
		b := e.Body
		if !b.Sleeping {
			b.Velocity.Y -= a.settings.Gravity * b.GravityScale * dt
			b.Position = b.Position.Add(b.Velocity.Scale(dt))
		}

		for _, o := range static {
			n, depth, hit := circleContact(b.Position, b.Shape.Radius, placementOf(o.Body))
			if !hit {
				continue
			}
			current[makePair(e.ID, o.ID)] = struct{}{}
			if o.Body.Sensor || b.Sensor {
				continue
			}

			b.Position = b.Position.Add(n.Scale(depth))
			if vn := b.Velocity.Dot(n); vn < 0 {
				restitution := math.Max(b.Restitution, o.Body.Restitution)
				b.Velocity = b.Velocity.Sub(n.Scale((1 + restitution) * vn))
			}
			b.Sleeping = false
		}

		a.updateSleep(b, dt)
	}

	var events []domain.CollisionEvent
	for p := range current {
		if _, was := a.contacts[p]; !was {
			events = append(events, domain.CollisionEvent{Kind: domain.CollisionStarted, A: p[0], B: p[1]})
		}
	}
	for p := range a.contacts {
		if _, still := current[p]; still {
			continue
		}
		// Пара с удалённой сущностью исчезает молча.
		if !w.Exists(p[0]) || !w.Exists(p[1]) {
			continue
		}
		events = append(events, domain.CollisionEvent{Kind: domain.CollisionEnded, A: p[0], B: p[1]})
	}
	a.contacts = current

	// Порядок обхода map случаен: сортируем ради детерминизма реплеев.
	sort.Slice(events, func(i, j int) bool {
		if events[i].Kind != events[j].Kind {
			return events[i].Kind > events[j].Kind // сначала END, потом START
		}
		if events[i].A != events[j].A {
			return events[i].A < events[j].A
		}
		return events[i].B < events[j].B
	})
	return events
}

func (a *Arena) updateSleep(b *domain.BodyComponent, dt float64) {
	if b.Sleeping || a.settings.SleepTime <= 0 {
		return
	}
	if b.Velocity.Len() < a.settings.SleepSpeed {
		b.SlowFor += dt
		if b.SlowFor >= a.settings.SleepTime {
			b.Sleeping = true
			b.Velocity = domain.Vec2{}
		}
		return
	}
	b.SlowFor = 0
}

// QueryOverlaps проверяет форму против всех тел мира, включая превью.
func (a *Arena) QueryOverlaps(w *domain.World, shape domain.Shape, pos domain.Vec2, rot float64, filter Filter) []domain.EntityID {
	probe := Placement{Shape: shape, Position: pos, Rotation: rot}
	var hits []domain.EntityID
	w.Each(func(e *domain.Entity) {
		if e.Body == nil || !filter.accepts(e) {
			return
		}
		if Overlaps(probe, placementOf(e.Body)) {
			hits = append(hits, e.ID)
		}
	})
	return hits
}

// ActiveContacts - число активных пар (для /debug).
func (a *Arena) ActiveContacts() int {
	return len(a.contacts)
}

func makePair(x, y domain.EntityID) pairKey {
	if x < y {
		return pairKey{x, y}
	}
	return pairKey{y, x}
}
