package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rpg-core/internal/agent"
	"rpg-core/internal/catalog"
	"rpg-core/internal/engine"
	"rpg-core/internal/infrastructure/storage"
	"rpg-core/internal/version"
	"rpg-core/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// errFinished - симуляция отработала заданное число тиков
var errFinished = errors.New("simulation finished")

// shutdownTimeout - сколько ждём финального сохранения
const shutdownTimeout = 5 * time.Second

func init() {
	logger.Init()
}

func main() {
	// 1. Флаги перекрывают переменные окружения RPG_*
	var (
		seed      int64
		scene     int
		ticks     int
		templates string
		watch     bool
		saveName  string
		backend   string
		fresh     bool
		noBot     bool
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.IntVar(&scene, "scene", 0, "Start scene when there is no save")
	flag.IntVar(&ticks, "ticks", 0, "Run N ticks as fast as possible and exit (0 for realtime until signal)")
	flag.StringVar(&templates, "templates", "", "Template directory (empty for the embedded catalog)")
	flag.BoolVar(&watch, "watch", false, "Reload templates when files change")
	flag.StringVar(&saveName, "save", "", "Save name")
	flag.StringVar(&backend, "backend", "", "Save backend: file or sqlite")
	flag.BoolVar(&fresh, "fresh", false, "Delete the save before starting")
	flag.BoolVar(&noBot, "no-bot", false, "Do not drive the player")
	flag.Parse()

	logger.Log.Info("Starting rpg-core simulation...")
	build := version.Current()
	logger.Log.WithFields(build.Fields()).Info(build.String())

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "scene":
			cfg.StartScene = scene
		case "templates":
			cfg.TemplateDir = templates
		case "watch":
			cfg.WatchTemplates = watch
		case "save":
			cfg.SaveName = saveName
		case "backend":
			cfg.SaveBackend = backend
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	logger.Log.Infof("Using Master Seed: %d", cfg.Seed)

	// 2. Каталог и хранилище
	cat, err := loadCatalog(cfg.TemplateDir)
	if err != nil {
		logger.Log.Fatal("Catalog error: ", err)
	}
	store, err := cfg.OpenStore()
	if err != nil {
		logger.Log.Fatal("Save store error: ", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := engine.NewGame(cfg, cat, store)
	if fresh {
		if err := game.DeleteSave(ctx, cfg.SaveName); err != nil {
			logger.Log.Fatal("Delete save error: ", err)
		}
	}
	if err := game.LoadLastScene(ctx, cfg.SaveName); err != nil {
		// Битое сохранение не трогаем: решение стереть его за пользователем
		if errors.Is(err, storage.ErrCorruptSave) {
			logger.Log.WithFields(logrus.Fields{
				"save":    cfg.SaveName,
				"backend": cfg.SaveBackend,
			}).WithError(err).Error("Save is corrupt, run with -fresh to discard it and start a new game")
			os.Exit(1)
		}
		logger.Log.Fatal("Load error: ", err)
	}

	var bot *agent.Bot
	if !noBot {
		bot = agent.NewBot()
	}

	// 3. Игровой цикл и наблюдатель каталога
	reloads := make(chan *catalog.Catalog, 1)
	grp, gctx := errgroup.WithContext(ctx)
	if cfg.WatchTemplates {
		watcher, err := catalog.NewWatcher(cfg.TemplateDir)
		if err != nil {
			logger.Log.Fatal("Watcher error: ", err)
		}
		grp.Go(func() error {
			return watchCatalog(gctx, watcher, cfg.TemplateDir, reloads)
		})
	}
	grp.Go(func() error {
		return runLoop(gctx, game, bot, reloads, ticks)
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, errFinished) && !errors.Is(err, context.Canceled) {
		logger.Log.Error("Simulation error: ", err)
	}

	logger.Log.Info("Shutting down...")
	saveCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := game.Save(saveCtx, cfg.SaveName); err != nil {
		logger.Log.Error("Final save failed: ", err)
	}
	logSummary(game)
	logger.Log.Info("Done.")
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Default()
	}
	return catalog.LoadDir(dir)
}

// runLoop крутит тики. Все изменения мира идут только отсюда.
func runLoop(ctx context.Context, game *engine.Game, bot *agent.Bot, reloads <-chan *catalog.Catalog, limit int) error {
	dt := game.Config.TickInterval().Seconds()

	step := func() {
		select {
		case cat := <-reloads:
			game.SetCatalog(cat)
		default:
		}
		if bot != nil {
			bot.Act(ctx, game)
		}
		game.Tick(ctx, dt)
	}

	// Режим прогона: без пауз между тиками
	if limit > 0 {
		for i := 0; i < limit; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			step()
		}
		return errFinished
	}

	ticker := time.NewTicker(game.Config.TickInterval())
	defer ticker.Stop()

	var autosave <-chan time.Time
	if game.Config.AutosaveInterval > 0 {
		t := time.NewTicker(game.Config.AutosaveInterval)
		defer t.Stop()
		autosave = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			step()
		case <-autosave:
			if err := game.Save(ctx, game.Config.SaveName); err != nil {
				logger.Log.WithError(err).Error("Autosave failed")
			}
		}
	}
}

// watchCatalog перечитывает каталог при изменении файлов. Битый каталог
// не применяется, игра остаётся на старом.
func watchCatalog(ctx context.Context, watcher *catalog.Watcher, dir string, reloads chan *catalog.Catalog) error {
	defer watcher.Close()
	log := logger.For("catalog_watcher")

	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			cat, err := catalog.LoadDir(dir)
			if err != nil {
				log.WithField("file", name).WithError(err).Error("Catalog reload failed, keeping the old one")
				continue
			}
			// В канале держим только последний каталог
			select {
			case <-reloads:
			default:
			}
			reloads <- cat
			log.WithField("file", name).Info("Catalog reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watcher error")
		}
	}
}

func logSummary(game *engine.Game) {
	fields := logrus.Fields{"ticks": game.Ticks}
	if game.World != nil {
		fields["scene"] = game.World.SceneIndex
		fields["entities"] = len(game.World.Entities())
	}
	if p := game.Player(); p != nil {
		fields["level"] = p.Level()
		if p.Health != nil {
			fields["health"] = p.Health.Current()
		}
		if p.Experience != nil {
			fields["xp"] = p.Experience.Current()
		}
	}
	logger.Log.WithFields(fields).Info("Simulation summary")
}
