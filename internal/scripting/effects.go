package scripting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rpg-core/pkg/logger"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"
)

// DefaultRunTimeout - лимит на один прогон скрипта эффекта.
const DefaultRunTimeout = 50 * time.Millisecond

// Выходные глобальные переменные скрипта
const (
	outHeal   = "heal"
	outMagic  = "magic"
	outDamage = "damage"
	outXP     = "xp"
)

var ErrNoSource = errors.New("scripting: no script source")

// SourceFunc отдаёт текст скрипта по имени.
type SourceFunc func(name string) ([]byte, error)

// User - то, что скрипт видит как глобальную карту `user`.
type User struct {
	Health    float64
	MaxHealth float64
	Magic     float64
	MaxMagic  float64
	Level     int
}

// Effect - результат скрипта. Нулевые поля ничего не делают.
type Effect struct {
	Heal   float64
	Magic  float64
	Damage float64
	XP     float64
}

func (e Effect) IsZero() bool {
	return e == Effect{}
}

// Engine компилирует скрипты эффектов один раз и гоняет клоны.
type Engine struct {
	mu      sync.Mutex
	source  SourceFunc
	cache   map[string]*tengo.Compiled
	Timeout time.Duration
}

func NewEngine(source SourceFunc) *Engine {
	return &Engine{
		source:  source,
		cache:   make(map[string]*tengo.Compiled),
		Timeout: DefaultRunTimeout,
	}
}

// SetSource меняет источник и сбрасывает кэш (горячая перезагрузка каталога).
func (e *Engine) SetSource(source SourceFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.source = source
	e.cache = make(map[string]*tengo.Compiled)
}

// Run выполняет скрипт name для пользователя user.
func (e *Engine) Run(ctx context.Context, name string, user User) (Effect, error) {
	compiled, err := e.compiled(name)
	if err != nil {
		return Effect{}, err
	}

	run := compiled.Clone()
	if err := run.Set("user", map[string]interface{}{
		"health":     user.Health,
		"max_health": user.MaxHealth,
		"magic":      user.Magic,
		"max_magic":  user.MaxMagic,
		"level":      user.Level,
	}); err != nil {
		return Effect{}, fmt.Errorf("scripting: %s: set user: %w", name, err)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	if err := run.RunContext(ctx); err != nil {
		return Effect{}, fmt.Errorf("scripting: %s: run: %w", name, err)
	}

	effect := Effect{
		Heal:   run.Get(outHeal).Float(),
		Magic:  run.Get(outMagic).Float(),
		Damage: run.Get(outDamage).Float(),
		XP:     run.Get(outXP).Float(),
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "scripting",
		"script":    name,
		"heal":      effect.Heal,
		"magic":     effect.Magic,
		"damage":    effect.Damage,
		"xp":        effect.XP,
	}).Debug("Effect script finished")
	return effect, nil
}

func (e *Engine) compiled(name string) (*tengo.Compiled, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c, ok := e.cache[name]; ok {
		return c, nil
	}
	if e.source == nil {
		return nil, ErrNoSource
	}

	src, err := e.source(name)
	if err != nil {
		return nil, fmt.Errorf("scripting: load %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	if err := script.Add("user", map[string]interface{}{}); err != nil {
		return nil, fmt.Errorf("scripting: %s: declare user: %w", name, err)
	}
	for _, out := range []string{outHeal, outMagic, outDamage, outXP} {
		if err := script.Add(out, 0.0); err != nil {
			return nil, fmt.Errorf("scripting: %s: declare %s: %w", name, out, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripting: compile %s: %w", name, err)
	}
	e.cache[name] = c
	return c, nil
}
