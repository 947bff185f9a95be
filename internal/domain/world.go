package domain

// slot - ячейка реестра. gen растёт при каждом освобождении,
// поэтому старый EntityID перестаёт совпадать.
type slot struct {
	gen    uint32
	entity *Entity
}

// World - реестр сущностей игрового поля.
// Не потокобезопасен: им владеет одна горутина сессии.
type World struct {
	slots []slot
	free  []uint32
	alive int
}

func NewWorld() *World {
	return &World{
		// Индекс 0 зарезервирован, чтобы EntityID никогда не совпал с NilEntityID.
		slots: make([]slot, 1, 64),
	}
}

// Spawn регистрирует сущность и присваивает ей ID.
func (w *World) Spawn(e *Entity) EntityID {
	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.slots = append(w.slots, slot{gen: 1})
		index = uint32(len(w.slots) - 1)
	}

	s := &w.slots[index]
	s.entity = e
	e.ID = PackEntityID(e.Kind(), s.gen, index)
	w.alive++
	return e.ID
}

// Despawn удаляет сущность. Повторный вызов или устаревший ID - no-op.
func (w *World) Despawn(id EntityID) bool {
	s := w.lookup(id)
	if s == nil {
		return false
	}
	s.entity = nil
	s.gen = (s.gen + 1) & maskGen
	if s.gen == 0 {
		s.gen = 1
	}
	w.free = append(w.free, id.Index())
	w.alive--
	return true
}

// Get возвращает сущность или nil, если она уже удалена.
func (w *World) Get(id EntityID) *Entity {
	if s := w.lookup(id); s != nil {
		return s.entity
	}
	return nil
}

func (w *World) Exists(id EntityID) bool {
	return w.lookup(id) != nil
}

func (w *World) lookup(id EntityID) *slot {
	if id.IsNil() {
		return nil
	}
	idx := id.Index()
	if int(idx) >= len(w.slots) {
		return nil
	}
	s := &w.slots[idx]
	if s.entity == nil || s.gen != id.Generation() {
		return nil
	}
	return s
}

// Len - количество живых сущностей.
func (w *World) Len() int {
	return w.alive
}

// Each обходит живые сущности в порядке индексов (детерминированно).
// Удалять сущности внутри fn можно.
func (w *World) Each(fn func(e *Entity)) {
	for i := 1; i < len(w.slots); i++ {
		if e := w.slots[i].entity; e != nil {
			fn(e)
		}
	}
}

// Filter собирает сущности, подходящие под предикат.
func (w *World) Filter(pred func(e *Entity) bool) []*Entity {
	var out []*Entity
	w.Each(func(e *Entity) {
		if pred(e) {
			out = append(out, e)
		}
	})
	return out
}

func (w *World) Balls() []*Entity {
	return w.Filter(func(e *Entity) bool { return e.Ball != nil })
}

func (w *World) Coins() []*Entity {
	return w.Filter(func(e *Entity) bool { return e.Collectible != nil })
}

// Gadgets возвращает все гаджеты, включая превью.
func (w *World) Gadgets() []*Entity {
	return w.Filter(func(e *Entity) bool { return e.Gadget != nil })
}

func (w *World) PlacedGadgets() []*Entity {
	return w.Filter(func(e *Entity) bool { return e.Gadget != nil && e.Placed })
}

// Cannon - единственная пушка на поле (или nil).
func (w *World) Cannon() *Entity {
	for i := 1; i < len(w.slots); i++ {
		if e := w.slots[i].entity; e != nil && e.Cannon != nil {
			return e
		}
	}
	return nil
}

// DespawnWhere удаляет все сущности, подходящие под предикат, и возвращает их ID.
func (w *World) DespawnWhere(pred func(e *Entity) bool) []EntityID {
	var removed []EntityID
	w.Each(func(e *Entity) {
		if pred(e) {
			removed = append(removed, e.ID)
		}
	})
	for _, id := range removed {
		w.Despawn(id)
	}
	return removed
}
