package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"rpg-core/internal/infrastructure/storage"

	"github.com/fxamacker/cbor/v2"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	rec, err := readSave(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid save: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "show":
		show(rec)
	case "entity":
		if len(os.Args) < 4 {
			fmt.Println("Usage: saveinspect entity <file.sav> <entity_id>")
			return
		}
		if err := entity(rec, os.Args[3]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	case "copy":
		if len(os.Args) < 5 {
			fmt.Println("Usage: saveinspect copy <file.sav> <saves.db> <name>")
			return
		}
		if err := copyToSQLite(rec, os.Args[3], os.Args[4]); err != nil {
			fmt.Printf("Copy failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Copied to %s as %q\n", os.Args[3], os.Args[4])
	default:
		printHelp()
	}
}

func readSave(path string) (*storage.SaveRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return storage.Decode(data)
}

func show(rec *storage.SaveRecord) {
	fmt.Printf("last scene: %d\n", rec.LastScene)
	fmt.Printf("entities:   %d\n", len(rec.Entities))
	for _, id := range sortedKeys(rec.Entities) {
		state := rec.Entities[id]
		fmt.Printf("  %s\n", id)
		for _, kind := range sortedKeys(state) {
			fmt.Printf("    %-16s %5d bytes\n", kind, len(state[kind]))
		}
	}
}

// entity печатает блобы сущности в диагностической нотации CBOR.
func entity(rec *storage.SaveRecord, id string) error {
	state, ok := rec.Entities[id]
	if !ok {
		return fmt.Errorf("entity %q not found", id)
	}
	for _, kind := range sortedKeys(state) {
		diag, err := cbor.Diagnose(state[kind])
		if err != nil {
			diag = fmt.Sprintf("<undecodable: %v>", err)
		}
		fmt.Printf("%-16s %s\n", kind, diag)
	}
	return nil
}

func copyToSQLite(rec *storage.SaveRecord, dbPath, name string) error {
	db, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Save(context.Background(), name, rec)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printHelp() {
	fmt.Println(`Save Inspect - просмотр файлов сохранения .sav
Commands:
  show <file.sav>                  - сцена и список сущностей с видами компонентов
  entity <file.sav> <id>           - состояние сущности в нотации CBOR
  copy <file.sav> <saves.db> <name> - перенести сохранение в SQLite`)
}
