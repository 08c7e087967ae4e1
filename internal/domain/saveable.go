package domain

import (
	"fmt"
	"math"

	"rpg-core/internal/core/types/enums"
	"rpg-core/pkg/logger"

	"github.com/fxamacker/cbor/v2"
	"github.com/sirupsen/logrus"
)

// Имена видов сохраняемых компонентов (ключи внутренней карты SaveRecord).
const (
	SaveKindExperience    = "experience"
	SaveKindEquipment     = "equipment"
	SaveKindInventory     = "inventory"
	SaveKindActionStore   = "action_store"
	SaveKindAbilities     = "abilities"
	SaveKindCombat        = "combat"
	SaveKindMover         = "mover"
	SaveKindHealth        = "health"
	SaveKindMagic         = "magic"
	SaveKindAI            = "ai"
	SaveKindItemDropper   = "item_dropper"
	SaveKindPickupSpawner = "pickup_spawner"
)

// Saveable - запись явного реестра: вид компонента и функции снимка/восстановления.
type Saveable struct {
	Kind    string
	Capture func() ([]byte, error)
	Restore func(data []byte) error
}

// SaveContext - то, что нужно компонентам при восстановлении.
type SaveContext struct {
	Items ItemResolver
	World *GameWorld
}

var stateEncoder cbor.EncMode

func init() {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor enc mode: %v", err))
	}
	stateEncoder = mode
}

func encodeState(v any) ([]byte, error) {
	data, err := stateEncoder.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	return nil
}

// newSaveable связывает типизированное состояние с CBOR-блобом.
func newSaveable[T any](kind string, capture func() T, restore func(T)) Saveable {
	return Saveable{
		Kind: kind,
		Capture: func() ([]byte, error) {
			return encodeState(capture())
		},
		Restore: func(data []byte) error {
			var state T
			if err := decodeState(data, &state); err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			restore(state)
			return nil
		},
	}
}

type slotState struct {
	ItemID string `cbor:"item"`
	Count  int    `cbor:"n"`
}

type abilitySlotState struct {
	AbilityID string  `cbor:"id"`
	Level     int     `cbor:"lvl"`
	Active    bool    `cbor:"active"`
	Cooldown  float64 `cbor:"cd"`
}

type combatState struct {
	WeaponID            string  `cbor:"weapon"`
	TimeSinceLastAttack float64 `cbor:"since_attack"`
}

type aiState struct {
	State                    string  `cbor:"state"`
	WaypointIndex            int     `cbor:"wp"`
	TimeSinceLastSawPlayer   float64 `cbor:"since_seen"`
	TimeSinceReachedWaypoint float64 `cbor:"since_wp"`
	TimeSinceAggravated      float64 `cbor:"since_aggro"`
	StartPosition            Vec3    `cbor:"start"`
}

// Saveables строит реестр сохраняемых компонентов сущности.
// Порядок важен при восстановлении: опыт до здоровья, экипировка до боя.
func (e *Entity) Saveables(ctx SaveContext) []Saveable {
	var out []Saveable

	if e.Experience != nil {
		out = append(out, newSaveable(SaveKindExperience,
			func() float64 { return e.Experience.Current() },
			func(points float64) {
				e.Experience.restore(points)
				if e.Stats != nil {
					e.Stats.ResolveLevel()
				}
			}))
	}

	if e.Equipment != nil {
		out = append(out, newSaveable(SaveKindEquipment,
			func() map[string]string {
				state := make(map[string]string)
				for _, loc := range e.Equipment.PopulatedSlots() {
					state[loc.String()] = e.Equipment.ItemInSlot(loc).ID
				}
				return state
			},
			func(state map[string]string) {
				for _, loc := range e.Equipment.PopulatedSlots() {
					e.Equipment.RemoveItem(loc)
				}
				for locName, itemID := range state {
					item := e.resolveItem(ctx, itemID)
					loc := enums.ParseEquipLocation(locName)
					if item == nil || !e.Equipment.AddItem(item, loc) {
						e.restoreWarn(SaveKindEquipment, itemID, "equipment item rejected on restore")
					}
				}
			}))
	}

	if e.Inventory != nil {
		out = append(out, newSaveable(SaveKindInventory,
			func() []slotState {
				state := make([]slotState, e.Inventory.Size())
				for i := range state {
					if s := e.Inventory.Slot(i); !s.IsEmpty() {
						state[i] = slotState{ItemID: s.Item.ID, Count: s.Count}
					}
				}
				return state
			},
			func(state []slotState) {
				for i := range e.Inventory.slots {
					e.Inventory.slots[i] = InventorySlot{}
					if i >= len(state) || state[i].ItemID == "" || state[i].Count <= 0 {
						continue
					}
					if item := e.resolveItem(ctx, state[i].ItemID); item != nil {
						e.Inventory.slots[i] = InventorySlot{Item: item, Count: state[i].Count}
					}
				}
				e.Inventory.notify()
			}))
	}

	if e.ActionStore != nil {
		out = append(out, newSaveable(SaveKindActionStore,
			func() map[int]slotState {
				state := make(map[int]slotState)
				for _, i := range e.ActionStore.Indexes() {
					s, _ := e.ActionStore.Slot(i)
					state[i] = slotState{ItemID: s.Item.ID, Count: s.Count}
				}
				return state
			},
			func(state map[int]slotState) {
				e.ActionStore.slots = make(map[int]*ActionSlot)
				for i, s := range state {
					if item := e.resolveItem(ctx, s.ItemID); item != nil && s.Count > 0 {
						e.ActionStore.slots[i] = &ActionSlot{Item: item, Count: s.Count}
					}
				}
				e.ActionStore.notify()
			}))
	}

	if e.Abilities != nil {
		out = append(out, newSaveable(SaveKindAbilities,
			func() []abilitySlotState {
				state := make([]abilitySlotState, e.Abilities.Size())
				for i := range state {
					s := e.Abilities.Slot(i)
					if s.Ability == nil {
						continue
					}
					state[i] = abilitySlotState{
						AbilityID: s.Ability.ID,
						Level:     s.Level,
						Active:    s.Active,
						Cooldown:  s.CooldownRemaining(),
					}
				}
				return state
			},
			func(state []abilitySlotState) {
				for i := 0; i < e.Abilities.Size() && i < len(state); i++ {
					slot := AbilitySlot{TimeSinceUsed: math.Inf(1)}
					if state[i].AbilityID != "" {
						slot.Ability = e.resolveItem(ctx, state[i].AbilityID)
						slot.Level = state[i].Level
						slot.Active = state[i].Active
						if slot.Ability != nil && slot.Ability.Ability != nil && state[i].Cooldown > 0 {
							slot.TimeSinceUsed = slot.Ability.Ability.Cooldown - state[i].Cooldown
						}
					}
					e.Abilities.slots[i] = slot
				}
				e.Abilities.notify()
			}))
	}

	if e.Combat != nil {
		out = append(out, newSaveable(SaveKindCombat,
			func() combatState {
				return combatState{WeaponID: e.Combat.Weapon.ID, TimeSinceLastAttack: e.Combat.TimeSinceLastAttack}
			},
			func(state combatState) {
				e.Combat.TimeSinceLastAttack = state.TimeSinceLastAttack
				if state.WeaponID == e.Combat.DefaultWeapon.ID {
					e.Combat.EquipWeapon(nil)
					return
				}
				if ctx.Items != nil {
					if w, ok := ctx.Items.Weapon(state.WeaponID); ok {
						e.Combat.EquipWeapon(w)
						return
					}
				}
				e.restoreWarn(SaveKindCombat, state.WeaponID, "unknown weapon, using default")
				e.Combat.EquipWeapon(nil)
			}))
	}

	if e.Mover != nil {
		out = append(out, newSaveable(SaveKindMover,
			func() Vec3 { return e.Pos },
			func(pos Vec3) {
				if ctx.World != nil {
					ctx.World.UpdateEntityPos(e, pos)
				} else {
					e.Pos = pos
				}
				e.Mover.Stop()
				e.Scheduler.CancelCurrentAction()
			}))
	}

	if e.Health != nil {
		out = append(out, newSaveable(SaveKindHealth,
			func() float64 { return e.Health.Current() },
			func(value float64) { e.Health.restore(value) }))
	}

	if e.Magic != nil {
		out = append(out, newSaveable(SaveKindMagic,
			func() float64 { return e.Magic.Current() },
			func(value float64) { e.Magic.restore(value) }))
	}

	if e.AI != nil {
		out = append(out, newSaveable(SaveKindAI,
			func() aiState {
				return aiState{
					State:                    e.AI.State().String(),
					WaypointIndex:            e.AI.WaypointIndex,
					TimeSinceLastSawPlayer:   e.AI.TimeSinceLastSawPlayer,
					TimeSinceReachedWaypoint: e.AI.TimeSinceReachedWaypoint,
					TimeSinceAggravated:      e.AI.TimeSinceAggravated,
					StartPosition:            e.AI.StartPosition,
				}
			},
			func(state aiState) {
				e.AI.WaypointIndex = state.WaypointIndex
				e.AI.TimeSinceLastSawPlayer = state.TimeSinceLastSawPlayer
				e.AI.TimeSinceReachedWaypoint = state.TimeSinceReachedWaypoint
				e.AI.TimeSinceAggravated = state.TimeSinceAggravated
				e.AI.StartPosition = state.StartPosition
				if !e.IsAlive() {
					e.AI.restoreState(enums.AIStateDead)
					return
				}
				e.AI.restoreState(enums.ParseAIState(state.State))
			}))
	}

	if e.Dropper != nil {
		out = append(out, newSaveable(SaveKindItemDropper,
			func() []DropRecord { return e.Dropper.Records() },
			func(records []DropRecord) {
				scene := 0
				if ctx.World != nil {
					scene = ctx.World.SceneIndex
				}
				e.Dropper.restore(records, scene)
			}))
	}

	if e.Pickup != nil && e.Pickup.Spawner {
		out = append(out, newSaveable(SaveKindPickupSpawner,
			func() bool { return e.Pickup.Collected },
			func(collected bool) { e.Pickup.Collected = collected }))
	}

	return out
}

func (e *Entity) resolveItem(ctx SaveContext, id string) *Item {
	if ctx.Items == nil || id == "" {
		return nil
	}
	item, ok := ctx.Items.Item(id)
	if !ok {
		e.restoreWarn("item", id, "unknown item id in save")
		return nil
	}
	return item
}

func (e *Entity) restoreWarn(kind, id, msg string) {
	logger.Log.WithFields(logrus.Fields{
		"component": "saveable",
		"entity_id": e.ID,
		"kind":      kind,
		"ref":       id,
	}).Warn(msg)
}
