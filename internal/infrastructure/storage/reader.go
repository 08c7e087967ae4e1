package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Load читает слот. Нет файла - пустая запись.
func (s *FileStore) Load(ctx context.Context, name string) (*SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return NewSaveRecord(), nil
		}
		return nil, fmt.Errorf("open save: %w", err)
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

// Decode разбирает запись из байтов (используется SQLiteStore).
func Decode(data []byte) (*SaveRecord, error) {
	return readBinary(bytes.NewReader(data))
}

func readBinary(r io.Reader) (*SaveRecord, error) {
	// 1. Заголовок целиком
	var header SaveFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrCorruptSave, err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrCorruptSave)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version: %d (expected %d)", ErrCorruptSave, header.Version, Version1)
	}
	if header.EntityCount > maxEntityCount {
		return nil, fmt.Errorf("%w: entity count %d", ErrCorruptSave, header.EntityCount)
	}

	rec := &SaveRecord{
		LastScene: int(header.LastScene),
		Entities:  make(map[string]map[string][]byte, header.EntityCount),
	}

	// 2. Сущности
	for i := 0; i < int(header.EntityCount); i++ {
		var eh EntityHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, fmt.Errorf("%w: entity %d header: %v", ErrCorruptSave, i, err)
		}
		id, err := readString(r, int(eh.IDLen))
		if err != nil {
			return nil, fmt.Errorf("%w: entity %d id: %v", ErrCorruptSave, i, err)
		}

		kinds := make(map[string][]byte, eh.ComponentCount)
		for j := 0; j < int(eh.ComponentCount); j++ {
			var ch ComponentHeader
			if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
				return nil, fmt.Errorf("%w: %s component header: %v", ErrCorruptSave, id, err)
			}
			if ch.DataLen > maxBlobLen {
				return nil, fmt.Errorf("%w: %s component of %d bytes", ErrCorruptSave, id, ch.DataLen)
			}
			kind, err := readString(r, int(ch.KindLen))
			if err != nil {
				return nil, fmt.Errorf("%w: %s component kind: %v", ErrCorruptSave, id, err)
			}
			blob := make([]byte, ch.DataLen)
			if _, err := io.ReadFull(r, blob); err != nil {
				return nil, fmt.Errorf("%w: %s/%s body: %v", ErrCorruptSave, id, kind, err)
			}
			kinds[kind] = blob
		}
		rec.Entities[id] = kinds
	}

	return rec, nil
}

func readString(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
