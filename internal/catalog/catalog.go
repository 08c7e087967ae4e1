package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"rpg-core/internal/core/types/enums"
	"rpg-core/internal/domain"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Файлы каталога внутри корня fs.FS
const (
	FileItems       = "items.yaml"
	FileProgression = "progression.yaml"
	FileLoot        = "loot.yaml"
	FilePrefabs     = "prefabs.yaml"
	FileScenes      = "scenes.yaml"
	ScriptsDir      = "scripts"
	ScriptExt       = ".tengo"
)

var (
	ErrUnknownItem   = errors.New("catalog: unknown item")
	ErrUnknownWeapon = errors.New("catalog: unknown weapon")
	ErrUnknownLoot   = errors.New("catalog: unknown loot table")
	ErrUnknownPrefab = errors.New("catalog: unknown prefab")
)

// Catalog - неизменяемые шаблоны игры. Передаётся явно, глобального кэша нет.
type Catalog struct {
	fsys fs.FS

	items       map[string]*domain.Item
	weapons     map[string]*domain.WeaponConfig
	progression *domain.Progression
	loot        map[string]*domain.LootTable
	prefabs     map[string]*PrefabSpec
	scenes      map[int]*SceneSpec
}

var _ domain.ItemResolver = (*Catalog)(nil)

// Default - каталог из встроенных данных.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("catalog: embedded data: %w", err)
	}
	return Load(sub)
}

// LoadDir читает каталог с диска (для горячей перезагрузки).
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load собирает каталог из fsys. Ссылки на неизвестные шаблоны - ошибка,
// повторный ID - лог и первый побеждает.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		fsys:        fsys,
		items:       make(map[string]*domain.Item),
		weapons:     make(map[string]*domain.WeaponConfig),
		progression: domain.NewProgression(),
		loot:        make(map[string]*domain.LootTable),
		prefabs:     make(map[string]*PrefabSpec),
		scenes:      make(map[int]*SceneSpec),
	}

	items, err := LoadSpec[ItemsFile](fsys, FileItems)
	if err != nil {
		return nil, err
	}
	progression, err := LoadSpec[ProgressionFile](fsys, FileProgression)
	if err != nil {
		return nil, err
	}
	loot, err := LoadSpec[LootFile](fsys, FileLoot)
	if err != nil {
		return nil, err
	}
	prefabs, err := LoadSpec[PrefabsFile](fsys, FilePrefabs)
	if err != nil {
		return nil, err
	}
	scenes, err := LoadSpec[ScenesFile](fsys, FileScenes)
	if err != nil {
		return nil, err
	}

	// Порядок важен: оружие -> предметы -> прогрессия -> лут -> префабы -> сцены
	if err := c.addWeapons(items.Weapons); err != nil {
		return nil, err
	}
	if err := c.addItems(items.Items); err != nil {
		return nil, err
	}
	if err := c.addProgression(progression); err != nil {
		return nil, err
	}
	if err := c.addLoot(loot.Tables); err != nil {
		return nil, err
	}
	if err := c.addPrefabs(prefabs.Prefabs); err != nil {
		return nil, err
	}
	if err := c.addScenes(scenes.Scenes); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "catalog",
		"items":     len(c.items),
		"weapons":   len(c.weapons),
		"loot":      len(c.loot),
		"prefabs":   len(c.prefabs),
		"scenes":    len(c.scenes),
	}).Info("Catalog loaded")
	return c, nil
}

func (c *Catalog) Item(id string) (*domain.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

func (c *Catalog) Weapon(id string) (*domain.WeaponConfig, bool) {
	w, ok := c.weapons[id]
	return w, ok
}

func (c *Catalog) Progression() *domain.Progression {
	return c.progression
}

func (c *Catalog) LootTable(id string) (*domain.LootTable, bool) {
	t, ok := c.loot[id]
	return t, ok
}

func (c *Catalog) Prefab(id string) (*PrefabSpec, bool) {
	p, ok := c.prefabs[id]
	return p, ok
}

func (c *Catalog) Scene(index int) (*SceneSpec, bool) {
	s, ok := c.scenes[index]
	return s, ok
}

// SceneIndexes - индексы сцен по возрастанию.
func (c *Catalog) SceneIndexes() []int {
	out := make([]int, 0, len(c.scenes))
	for i := range c.scenes {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Script отдаёт текст скрипта эффекта. Имя без расширения.
func (c *Catalog) Script(name string) ([]byte, error) {
	if !strings.HasSuffix(name, ScriptExt) {
		name += ScriptExt
	}
	data, err := fs.ReadFile(c.fsys, path.Join(ScriptsDir, path.Clean(name)))
	if err != nil {
		return nil, fmt.Errorf("catalog: script %s: %w", name, err)
	}
	return data, nil
}

func (c *Catalog) addWeapons(specs []WeaponSpec) error {
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.weapons[spec.ID]; dup {
			duplicate("weapon", spec.ID)
			continue
		}
		w := &domain.WeaponConfig{
			ID:        spec.ID,
			Range:     spec.Range,
			Damage:    spec.Damage,
			RightHand: !spec.LeftHand,
		}
		if spec.Projectile != nil {
			p := domain.DefaultProjectileConfig()
			p.Speed = spec.Projectile.Speed
			p.Homing = spec.Projectile.Homing
			if spec.Projectile.MaxLifetime > 0 {
				p.MaxLifetime = spec.Projectile.MaxLifetime
			}
			if spec.Projectile.TimeAfterImpact > 0 {
				p.TimeAfterImpact = spec.Projectile.TimeAfterImpact
			}
			if spec.Projectile.HitRadius > 0 {
				p.HitRadius = spec.Projectile.HitRadius
			}
			w.Projectile = &p
		}
		c.weapons[spec.ID] = w
	}
	return nil
}

func (c *Catalog) addItems(specs []ItemSpec) error {
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.items[spec.ID]; dup {
			duplicate("item", spec.ID)
			continue
		}
		item := &domain.Item{
			ID:           spec.ID,
			DisplayName:  spec.Name,
			Description:  spec.Description,
			Icon:         spec.Icon,
			Kind:         enums.ParseItemKind(spec.Kind),
			Stackable:    spec.Stackable,
			MaxPerSlot:   spec.MaxPerSlot,
			Location:     enums.ParseEquipLocation(spec.Location),
			Additive:     parseStats(spec.Additive),
			Percentage:   parseStats(spec.Percentage),
			Consumable:   spec.Consumable,
			Effect:       spec.Effect,
			PickupPrefab: spec.Pickup,
		}
		if item.DisplayName == "" {
			item.DisplayName = spec.ID
		}
		if spec.Weapon != "" {
			w, ok := c.weapons[spec.Weapon]
			if !ok {
				return fmt.Errorf("item %s: %w: %s", spec.ID, ErrUnknownWeapon, spec.Weapon)
			}
			item.Weapon = w
		}
		if spec.Ability != nil {
			ability, err := c.buildAbility(spec.ID, spec.Ability)
			if err != nil {
				return err
			}
			item.Ability = ability
		}
		c.items[spec.ID] = item
	}
	return nil
}

func (c *Catalog) buildAbility(itemID string, spec *AbilitySpec) (*domain.AbilityConfig, error) {
	a := domain.DefaultAbilityConfig()
	a.OnSelf = spec.OnSelf
	if spec.DamageType != "" {
		a.DamageType = enums.ParseStatType(spec.DamageType)
	}
	if spec.CostType != "" {
		a.CostType = enums.ParseStatType(spec.CostType)
	}
	a.CostValue = spec.CostValue
	a.Duration = spec.Duration
	if spec.Range > 0 {
		a.Range = spec.Range
	}
	a.Cooldown = spec.Cooldown
	a.Damage = spec.Damage
	a.Heal = spec.Heal
	if spec.Weapon != "" {
		w, ok := c.weapons[spec.Weapon]
		if !ok {
			return nil, fmt.Errorf("ability %s: %w: %s", itemID, ErrUnknownWeapon, spec.Weapon)
		}
		a.Weapon = w
	}
	return a, nil
}

func (c *Catalog) addProgression(spec ProgressionFile) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	for className, stats := range spec.Classes {
		class := enums.ParseCharacterClass(className)
		for statName, levels := range stats {
			c.progression.SetLevels(class, enums.ParseStatType(statName), levels)
		}
	}
	return nil
}

func (c *Catalog) addLoot(specs []LootTableSpec) error {
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.loot[spec.ID]; dup {
			duplicate("loot_table", spec.ID)
			continue
		}
		table := &domain.LootTable{
			ID:         spec.ID,
			DropChance: spec.DropChance,
			MinDrops:   spec.MinDrops,
			MaxDrops:   spec.MaxDrops,
		}
		for _, e := range spec.Entries {
			item, ok := c.items[e.Item]
			if !ok {
				return fmt.Errorf("loot table %s: %w: %s", spec.ID, ErrUnknownItem, e.Item)
			}
			table.Entries = append(table.Entries, domain.LootEntry{
				Item:      item,
				Chance:    e.Chance,
				MinNumber: e.MinNumber,
				MaxNumber: e.MaxNumber,
			})
		}
		c.loot[spec.ID] = table
	}
	return nil
}

func (c *Catalog) addPrefabs(specs []PrefabSpec) error {
	for i := range specs {
		spec := specs[i]
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.prefabs[spec.ID]; dup {
			duplicate("prefab", spec.ID)
			continue
		}
		if err := c.checkPrefabRefs(&spec); err != nil {
			return err
		}
		c.prefabs[spec.ID] = &spec
	}
	return nil
}

// checkPrefabRefs проверяет, что все ссылки префаба существуют.
func (c *Catalog) checkPrefabRefs(p *PrefabSpec) error {
	var itemRefs []string
	if p.Inventory != nil {
		for _, s := range p.Inventory.Items {
			itemRefs = append(itemRefs, s.Item)
		}
	}
	for _, id := range p.Equipment {
		itemRefs = append(itemRefs, id)
	}
	for _, s := range p.ActionBar {
		itemRefs = append(itemRefs, s.Item)
	}
	if p.Abilities != nil {
		for _, s := range p.Abilities.Slots {
			itemRefs = append(itemRefs, s.Ability)
		}
	}
	if p.Pickup != nil && p.Pickup.Item != "" {
		itemRefs = append(itemRefs, p.Pickup.Item)
	}
	for _, id := range itemRefs {
		if _, ok := c.items[id]; !ok {
			return fmt.Errorf("prefab %s: %w: %s", p.ID, ErrUnknownItem, id)
		}
	}

	if p.Combat != nil && p.Combat.Weapon != "" {
		if _, ok := c.weapons[p.Combat.Weapon]; !ok {
			return fmt.Errorf("prefab %s: %w: %s", p.ID, ErrUnknownWeapon, p.Combat.Weapon)
		}
	}
	if p.Dropper != nil && p.Dropper.LootTable != "" {
		if _, ok := c.loot[p.Dropper.LootTable]; !ok {
			return fmt.Errorf("prefab %s: %w: %s", p.ID, ErrUnknownLoot, p.Dropper.LootTable)
		}
	}
	return nil
}

func (c *Catalog) addScenes(specs []SceneSpec) error {
	for i := range specs {
		spec := specs[i]
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.scenes[spec.Index]; dup {
			duplicate("scene", fmt.Sprint(spec.Index))
			continue
		}
		for _, e := range spec.Entities {
			if _, ok := c.prefabs[e.Prefab]; !ok {
				return fmt.Errorf("scene %d: %w: %s", spec.Index, ErrUnknownPrefab, e.Prefab)
			}
		}
		c.scenes[spec.Index] = &spec
	}
	return nil
}

func parseStats(in map[string]float64) map[enums.StatType]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[enums.StatType]float64, len(in))
	for name, v := range in {
		out[enums.ParseStatType(name)] += v
	}
	return out
}

func duplicate(kind, id string) {
	logger.Log.WithFields(logrus.Fields{
		"component": "catalog",
		"kind":      kind,
		"id":        id,
	}).Error("Duplicate template id, keeping the first definition")
}
