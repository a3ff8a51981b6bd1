package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"channel-pricer/internal/bot"
	"channel-pricer/internal/config"
	"channel-pricer/internal/form"
	"channel-pricer/internal/report"
	"channel-pricer/internal/settings"
	"channel-pricer/internal/storage"
	"channel-pricer/pkg/logger"

	"go.uber.org/zap"
)

const usage = `usage: pricer <command> [args]

commands:
  calc k=v ...       print a quote (e.g. pricer calc cost=100.000 profit=25)
  export k=v ...     write the quote to an Excel file
  presets            list the preset catalog
  bot                run the Telegram bot
  migrate up|down|status
`

// calc and export give up on the settings database quickly and fall back
// to defaults.
const quoteConnectWait = 5 * time.Second

// ENTRY POINT

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(ctx, cmd, args, cfg, zapLogger); err != nil {
		zapLogger.Error("Command failed", zap.String("command", cmd), zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, cfg *config.Config, zapLogger *zap.Logger) error {
	switch cmd {
	case "calc", "export":
		return runQuote(ctx, cmd == "export", args, cfg, zapLogger)
	case "presets":
		return runPresets(ctx, cfg, zapLogger)
	case "bot":
		return runBot(ctx, cfg, zapLogger)
	case "migrate":
		return runMigrate(ctx, args, cfg, zapLogger)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runQuote(ctx context.Context, export bool, args []string, cfg *config.Config, zapLogger *zap.Logger) error {
	deps, err := openDeps(ctx, cfg, zapLogger, quoteConnectWait)
	if err != nil {
		return err
	}
	defer deps.Close()

	manager := settings.NewManager(deps.store, zapLogger, cfg.PersistTimeout)
	manager.Load(ctx)
	defer manager.Flush()

	f, warnings := form.ParseForm(strings.Join(args, " "))
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	s := manager.ApplyPatch(f.Overrides())
	q := pricingQuote(f, s)

	fmt.Println(form.RenderQuote(q, s))

	if !export {
		return nil
	}

	path, err := report.ExportQuote(q, s, cfg.ReportsDir, time.Now())
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runPresets(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	catalog := loadCatalog(ctx, cfg, zapLogger)
	for _, p := range catalog.List() {
		fmt.Printf("%-12s %-16s loss=%g%% risk=%g%% profit=%g%%\n",
			p.Key, p.Name, p.LossRate, p.RiskRate, p.ProfitRate)
	}
	return nil
}

func runBot(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	deps, err := openDeps(ctx, cfg, zapLogger, 0)
	if err != nil {
		return err
	}
	defer deps.Close()

	manager := settings.NewManager(deps.store, zapLogger, cfg.PersistTimeout)
	manager.Load(ctx)
	defer manager.Flush()

	tgBot, err := bot.New(
		cfg.TelegramToken,
		manager,
		loadCatalog(ctx, cfg, zapLogger),
		bot.NewStateStorage(deps.cache),
		zapLogger,
		cfg,
	)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	if err := tgBot.Start(ctx); err != nil {
		return fmt.Errorf("bot stopped with error: %w", err)
	}

	zapLogger.Info("Bot shutdown gracefully")
	return nil
}

func runMigrate(ctx context.Context, args []string, cfg *config.Config, zapLogger *zap.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pricer migrate up|down|status")
	}

	pg, err := storage.NewPostgresStorage(ctx, postgresConfig(cfg), nil, zapLogger)
	if err != nil {
		return err
	}
	defer pg.Close()

	switch args[0] {
	case "up":
		return storage.RunMigrations(ctx, pg.DB(), zapLogger)
	case "down":
		return storage.RollbackMigration(ctx, pg.DB(), zapLogger)
	case "status":
		return storage.Status(ctx, pg.DB(), zapLogger)
	default:
		return fmt.Errorf("unknown migrate action %q", args[0])
	}
}
