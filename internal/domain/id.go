package domain

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный идентификатор сущности игрового мира.
//
// Формат битов (от старших к младшим):
//
//	[ Kind (8) | Generation (24) | Index (32) ]
//
// Generation увеличивается каждый раз, когда слот переиспользуется,
// поэтому ссылка на уже удалённый мяч или монету не найдёт новую сущность
// в том же слоте (stale reference).
type EntityID uint64

// NilEntityID - отсутствие сущности (аналог nil).
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 24
	bitsKind  = 8

	shiftGen  = bitsIndex
	shiftKind = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
)

// PackEntityID собирает EntityID из составных частей.
// Значения вне диапазона обрезаются масками.
func PackEntityID(kind EntityKind, gen uint32, index uint32) EntityID {
	return EntityID(
		(uint64(kind)&maskKind)<<shiftKind |
			(uint64(gen)&maskGen)<<shiftGen |
			uint64(index)&maskIndex,
	)
}

func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

func (id EntityID) Kind() EntityKind {
	return EntityKind((id >> shiftKind) & maskKind)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String для логов: [kind gen:idx]
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[%s %d:%d]", id.Kind(), id.Generation(), id.Index())
}

// MarshalJSON сериализует ID строкой: JS теряет точность на uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строку, так и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(v)
	return nil
}
