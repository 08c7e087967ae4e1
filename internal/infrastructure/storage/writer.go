package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"rpg-core/internal/version"
)

const (
	MagicHeader string = `RPGS` // 4 байта
	Version1           = version.SaveFormat

	// Расширение файлов FileStore
	FileExt = ".sav"
)

// Пределы формата. Всё, что больше, считается порчей.
const (
	maxKindLen     = math.MaxUint8
	maxIDLen       = math.MaxUint16
	maxComponents  = math.MaxUint16
	maxBlobLen     = 16 << 20
	maxEntityCount = 1 << 20
)

// SaveFileHeader - заголовок файла, пишется binary.Write целиком.
type SaveFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	LastScene   int32   // 4 байта
	EntityCount uint32  // 4 байта
}

// EntityHeader - заголовок записи сущности.
type EntityHeader struct {
	IDLen          uint16
	ComponentCount uint16
}

// ComponentHeader - заголовок блоба компонента.
type ComponentHeader struct {
	KindLen uint8
	DataLen uint32
}

// FileStore хранит каждый слот в отдельном файле <name>.sav.
type FileStore struct {
	SaveDir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{SaveDir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.SaveDir, name+FileExt)
}

// Save пишет во временный файл и переименовывает, чтобы не оставить полфайла.
func (s *FileStore) Save(ctx context.Context, name string, rec *SaveRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.SaveDir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	buf := bufio.NewWriter(tmp)
	if err := writeBinary(buf, rec); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Encode сериализует запись в байты (используется SQLiteStore).
func Encode(rec *SaveRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeBinary(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBinary(w io.Writer, rec *SaveRecord) error {
	if len(rec.Entities) > maxEntityCount {
		return fmt.Errorf("too many entities: %d", len(rec.Entities))
	}

	// 1. Заголовок файла
	header := SaveFileHeader{
		Version:     Version1,
		LastScene:   int32(rec.LastScene),
		EntityCount: uint32(len(rec.Entities)),
	}
	copy(header.Magic[:], MagicHeader)
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Сущности в порядке ключей, чтобы файл был детерминированным
	for _, id := range sortedKeys(rec.Entities) {
		kinds := rec.Entities[id]
		if len(id) > maxIDLen {
			return fmt.Errorf("entity id too long: %d", len(id))
		}
		if len(kinds) > maxComponents {
			return fmt.Errorf("too many components for %s: %d", id, len(kinds))
		}

		eh := EntityHeader{IDLen: uint16(len(id)), ComponentCount: uint16(len(kinds))}
		if err := binary.Write(w, binary.LittleEndian, &eh); err != nil {
			return err
		}
		if _, err := io.WriteString(w, id); err != nil {
			return err
		}

		for _, kind := range sortedKeys(kinds) {
			blob := kinds[kind]
			if len(kind) > maxKindLen {
				return fmt.Errorf("component kind too long: %q", kind)
			}
			if len(blob) > maxBlobLen {
				return fmt.Errorf("component %s/%s too large: %d", id, kind, len(blob))
			}

			ch := ComponentHeader{KindLen: uint8(len(kind)), DataLen: uint32(len(blob))}
			if err := binary.Write(w, binary.LittleEndian, &ch); err != nil {
				return err
			}
			if _, err := io.WriteString(w, kind); err != nil {
				return err
			}
			if _, err := w.Write(blob); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
