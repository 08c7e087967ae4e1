package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrCorruptSave - файл сохранения не разбирается (магия, версия или тело).
	ErrCorruptSave = errors.New("corrupt save")
	// ErrInvalidName - имя слота сохранения пустое или содержит путь.
	ErrInvalidName = errors.New("invalid save name")
)

// SaveRecord - содержимое одного слота сохранения.
// Entities: id сущности -> вид компонента -> CBOR-блоб состояния.
type SaveRecord struct {
	LastScene int
	Entities  map[string]map[string][]byte
}

func NewSaveRecord() *SaveRecord {
	return &SaveRecord{Entities: make(map[string]map[string][]byte)}
}

// Merge кладёт поверх записи состояния из other. Сущности и виды,
// которых нет в other, остаются как были.
func (r *SaveRecord) Merge(other map[string]map[string][]byte) {
	if r.Entities == nil {
		r.Entities = make(map[string]map[string][]byte)
	}
	for id, kinds := range other {
		dst, ok := r.Entities[id]
		if !ok {
			dst = make(map[string][]byte, len(kinds))
			r.Entities[id] = dst
		}
		for kind, blob := range kinds {
			dst[kind] = blob
		}
	}
}

// Store - хранилище слотов сохранения.
type Store interface {
	// Load возвращает пустую запись, если слота нет.
	Load(ctx context.Context, name string) (*SaveRecord, error)
	Save(ctx context.Context, name string, rec *SaveRecord) error
	// Delete не считает отсутствие слота ошибкой.
	Delete(ctx context.Context, name string) error
	Close() error
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return ErrInvalidName
	}
	return nil
}
