package catalog

import (
	"errors"
	"fmt"
	"io/fs"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"

	"gopkg.in/yaml.v3"
)

// Validator - интерфейс, который реализуют YAML-описания
type Validator interface {
	Validate() error
}

// LoadSpec читает YAML-файл из fsys. Отсутствующий файл - пустое значение.
func LoadSpec[T any](fsys fs.FS, filename string) (T, error) {
	var zero T
	data, err := fs.ReadFile(fsys, filename)
	if errors.Is(err, fs.ErrNotExist) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("catalog: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("catalog: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() domain.Vec3 {
	return domain.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// --- items.yaml ---

type ItemsFile struct {
	Weapons []WeaponSpec `yaml:"weapons"`
	Items   []ItemSpec   `yaml:"items"`
}

type ProjectileSpec struct {
	Speed           float64 `yaml:"speed"`
	Homing          bool    `yaml:"homing"`
	MaxLifetime     float64 `yaml:"max_lifetime"`
	TimeAfterImpact float64 `yaml:"time_after_impact"`
	HitRadius       float64 `yaml:"hit_radius"`
}

type WeaponSpec struct {
	ID         string          `yaml:"id"`
	Range      float64         `yaml:"range"`
	Damage     float64         `yaml:"damage"`
	LeftHand   bool            `yaml:"left_hand"`
	Projectile *ProjectileSpec `yaml:"projectile"`
}

func (w WeaponSpec) Validate() error {
	if w.ID == "" {
		return errors.New("weapon id is required")
	}
	if w.Range < 0 || w.Damage < 0 {
		return fmt.Errorf("weapon %s: range and damage must be non-negative", w.ID)
	}
	if w.Projectile != nil && w.Projectile.Speed <= 0 {
		return fmt.Errorf("weapon %s: projectile speed must be positive", w.ID)
	}
	return nil
}

type AbilitySpec struct {
	OnSelf     bool    `yaml:"on_self"`
	DamageType string  `yaml:"damage_type"`
	CostType   string  `yaml:"cost_type"`
	CostValue  float64 `yaml:"cost"`
	Duration   float64 `yaml:"duration"`
	Range      float64 `yaml:"range"`
	Cooldown   float64 `yaml:"cooldown"`
	Damage     float64 `yaml:"damage"`
	Heal       float64 `yaml:"heal"`
	Weapon     string  `yaml:"weapon"`
}

type ItemSpec struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Icon        string             `yaml:"icon"`
	Kind        string             `yaml:"kind"`
	Stackable   bool               `yaml:"stackable"`
	MaxPerSlot  int                `yaml:"max_per_slot"`
	Location    string             `yaml:"location"`
	Additive    map[string]float64 `yaml:"additive"`
	Percentage  map[string]float64 `yaml:"percentage"`
	Weapon      string             `yaml:"weapon"`
	Consumable  bool               `yaml:"consumable"`
	Effect      string             `yaml:"effect"`
	Ability     *AbilitySpec       `yaml:"ability"`
	Pickup      string             `yaml:"pickup"`
}

func (i ItemSpec) Validate() error {
	if i.ID == "" {
		return errors.New("item id is required")
	}
	kind := enums.ParseItemKind(i.Kind)
	if kind == enums.ItemUnknown {
		return fmt.Errorf("item %s: unknown kind %q", i.ID, i.Kind)
	}
	switch kind {
	case enums.ItemEquipable, enums.ItemStatsEquipable, enums.ItemWeapon:
		if enums.ParseEquipLocation(i.Location) == enums.EquipUnknown {
			return fmt.Errorf("item %s: unknown location %q", i.ID, i.Location)
		}
	case enums.ItemAbility:
		if i.Ability == nil {
			return fmt.Errorf("item %s: ability block is required", i.ID)
		}
	}
	if kind == enums.ItemWeapon && i.Weapon == "" {
		return fmt.Errorf("item %s: weapon reference is required", i.ID)
	}
	for name := range i.Additive {
		if enums.ParseStatType(name) == enums.StatUnknown {
			return fmt.Errorf("item %s: unknown stat %q", i.ID, name)
		}
	}
	for name := range i.Percentage {
		if enums.ParseStatType(name) == enums.StatUnknown {
			return fmt.Errorf("item %s: unknown stat %q", i.ID, name)
		}
	}
	return nil
}

// --- progression.yaml ---

// ProgressionFile: класс -> стат -> значения по уровням
type ProgressionFile struct {
	Classes map[string]map[string][]float64 `yaml:"classes"`
}

func (p ProgressionFile) Validate() error {
	for class, stats := range p.Classes {
		if enums.ParseCharacterClass(class) == enums.ClassUnknown {
			return fmt.Errorf("progression: unknown class %q", class)
		}
		for stat := range stats {
			if enums.ParseStatType(stat) == enums.StatUnknown {
				return fmt.Errorf("progression %s: unknown stat %q", class, stat)
			}
		}
	}
	return nil
}

// --- loot.yaml ---

type LootFile struct {
	Tables []LootTableSpec `yaml:"tables"`
}

type LootEntrySpec struct {
	Item      string    `yaml:"item"`
	Chance    []float64 `yaml:"chance"`
	MinNumber []int     `yaml:"min_number"`
	MaxNumber []int     `yaml:"max_number"`
}

type LootTableSpec struct {
	ID         string          `yaml:"id"`
	DropChance []float64       `yaml:"drop_chance"`
	MinDrops   []int           `yaml:"min_drops"`
	MaxDrops   []int           `yaml:"max_drops"`
	Entries    []LootEntrySpec `yaml:"entries"`
}

func (t LootTableSpec) Validate() error {
	if t.ID == "" {
		return errors.New("loot table id is required")
	}
	for _, e := range t.Entries {
		if e.Item == "" {
			return fmt.Errorf("loot table %s: entry without item", t.ID)
		}
	}
	return nil
}

// --- prefabs.yaml ---

type PrefabsFile struct {
	Prefabs []PrefabSpec `yaml:"prefabs"`
}

type StatsSpec struct {
	Class        string `yaml:"class"`
	Level        int    `yaml:"level"`
	UseModifiers bool   `yaml:"use_modifiers"`
}

type HealthSpec struct {
	LevelUpBoost *float64 `yaml:"level_up_boost"`
}

type MagicSpec struct {
	RegenInterval float64 `yaml:"regen_interval"`
}

type CombatSpec struct {
	Weapon             string  `yaml:"weapon"`
	TimeBetweenAttacks float64 `yaml:"time_between_attacks"`
}

type AISpec struct {
	ChaseDistance        float64 `yaml:"chase_distance"`
	ChaseWaitTime        float64 `yaml:"chase_wait"`
	WaypointStopDistance float64 `yaml:"waypoint_stop_distance"`
	AggroRadius          float64 `yaml:"aggro_radius"`
	WaypointDwellTime    float64 `yaml:"dwell"`
	AggroDuration        float64 `yaml:"aggro_duration"`
}

type MoverSpec struct {
	Speed         float64 `yaml:"speed"`
	MaxPathLength float64 `yaml:"max_path_length"`
}

type StackSpec struct {
	Slot   *int   `yaml:"slot"`
	Item   string `yaml:"item"`
	Number int    `yaml:"number"`
}

type InventorySpec struct {
	Size  int         `yaml:"size"`
	Items []StackSpec `yaml:"items"`
}

type AbilitySlotSpec struct {
	Index   int    `yaml:"index"`
	Ability string `yaml:"ability"`
	Level   int    `yaml:"level"`
	Active  bool   `yaml:"active"`
}

type AbilitiesSpec struct {
	Size  int               `yaml:"size"`
	Slots []AbilitySlotSpec `yaml:"slots"`
}

type DropperSpec struct {
	LootTable    string  `yaml:"loot_table"`
	DropDistance float64 `yaml:"drop_distance"`
}

type PickupSpec struct {
	Kind        string   `yaml:"kind"`
	Item        string   `yaml:"item"`
	Number      int      `yaml:"number"`
	Heal        *float64 `yaml:"heal"`
	RespawnTime *float64 `yaml:"respawn_time"`
	Radius      float64  `yaml:"radius"`
}

// PrefabSpec - шаблон сущности: какие компоненты у неё есть.
type PrefabSpec struct {
	ID     string  `yaml:"id"`
	Type   string  `yaml:"type"`
	Name   string  `yaml:"name"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`

	Stats      *StatsSpec        `yaml:"stats"`
	Experience bool              `yaml:"experience"`
	Health     *HealthSpec       `yaml:"health"`
	Magic      *MagicSpec        `yaml:"magic"`
	Combat     *CombatSpec       `yaml:"combat"`
	AI         *AISpec           `yaml:"ai"`
	Mover      *MoverSpec        `yaml:"mover"`
	Inventory  *InventorySpec    `yaml:"inventory"`
	Equipment  map[string]string `yaml:"equipment"`
	ActionBar  []StackSpec       `yaml:"action_bar"`
	Abilities  *AbilitiesSpec    `yaml:"abilities"`
	Dropper    *DropperSpec      `yaml:"dropper"`
	Pickup     *PickupSpec       `yaml:"pickup"`
}

func (p PrefabSpec) Validate() error {
	if p.ID == "" {
		return errors.New("prefab id is required")
	}
	if enums.ParseEntityType(p.Type) == enums.EntityTypeUnknown {
		return fmt.Errorf("prefab %s: unknown type %q", p.ID, p.Type)
	}
	if p.Stats != nil && enums.ParseCharacterClass(p.Stats.Class) == enums.ClassUnknown {
		return fmt.Errorf("prefab %s: unknown class %q", p.ID, p.Stats.Class)
	}
	for loc := range p.Equipment {
		if enums.ParseEquipLocation(loc) == enums.EquipUnknown {
			return fmt.Errorf("prefab %s: unknown equip location %q", p.ID, loc)
		}
	}
	for _, s := range p.ActionBar {
		if s.Slot == nil {
			return fmt.Errorf("prefab %s: action bar entry %s needs a slot", p.ID, s.Item)
		}
	}
	if p.Pickup != nil && enums.ParsePickupKind(p.Pickup.Kind) == enums.PickupUnknown {
		return fmt.Errorf("prefab %s: unknown pickup kind %q", p.ID, p.Pickup.Kind)
	}
	return nil
}

// --- scenes.yaml ---

type ScenesFile struct {
	Scenes []SceneSpec `yaml:"scenes"`
}

type ObstacleSpec struct {
	Center Vec3Spec `yaml:"center"`
	Radius float64  `yaml:"radius"`
}

type SceneEntitySpec struct {
	ID        string     `yaml:"id"`
	Prefab    string     `yaml:"prefab"`
	Position  Vec3Spec   `yaml:"position"`
	Waypoints []Vec3Spec `yaml:"waypoints"`
	Spawner   bool       `yaml:"spawner"`
}

type PortalSpec struct {
	ID                string   `yaml:"id"`
	Position          Vec3Spec `yaml:"position"`
	Radius            float64  `yaml:"radius"`
	DestinationScene  int      `yaml:"destination_scene"`
	DestinationPortal string   `yaml:"destination_portal"`
	SpawnPoint        Vec3Spec `yaml:"spawn_point"`
}

// SceneSpec - расстановка сцены.
type SceneSpec struct {
	Index       int               `yaml:"index"`
	Name        string            `yaml:"name"`
	PlayerSpawn Vec3Spec          `yaml:"player_spawn"`
	Obstacles   []ObstacleSpec    `yaml:"obstacles"`
	Entities    []SceneEntitySpec `yaml:"entities"`
	Portals     []PortalSpec      `yaml:"portals"`
}

func (s SceneSpec) Validate() error {
	if s.Index < 0 {
		return fmt.Errorf("scene %q: negative index", s.Name)
	}
	for _, e := range s.Entities {
		if e.Prefab == "" {
			return fmt.Errorf("scene %d: entity %q without prefab", s.Index, e.ID)
		}
	}
	for _, p := range s.Portals {
		if p.ID == "" {
			return fmt.Errorf("scene %d: portal id is required", s.Index)
		}
	}
	return nil
}
