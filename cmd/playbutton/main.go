package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabrielcapilla/playbutton/internal/button"
	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/headless"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/metrics"
	"github.com/gabrielcapilla/playbutton/internal/ports"
	"github.com/gabrielcapilla/playbutton/internal/services/audio"
	"github.com/gabrielcapilla/playbutton/internal/services/clock"
	"github.com/gabrielcapilla/playbutton/internal/services/config"
	"github.com/gabrielcapilla/playbutton/internal/services/loader"
	"github.com/gabrielcapilla/playbutton/internal/services/storage"
	"github.com/gabrielcapilla/playbutton/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "playbutton: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := config.NewFlagSet("playbutton")
	if err := flags.Parse(args); err != nil {
		return err
	}

	dir, _ := flags.GetString("config")
	if dir == "" {
		dir = config.DefaultDir()
	}
	configService, err := config.NewViperConfigService(dir, flags)
	if err != nil {
		return err
	}
	cfg, err := configService.Load()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	logFile, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer logFile.Close()
	logger.Log.Info().Str("variant", cfg.Variant).Str("config", configService.ConfigFile()).Msg("Starting playbutton")

	configService.Watch(func(next domain.Config) {
		logger.SetLevel(next.LogLevel)
	})

	if n, _ := flags.GetInt("show-journal"); n > 0 {
		return showJournal(cfg.Journal.Path, n)
	}

	observers := button.Observers{button.LogObserver{}}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	observers = append(observers, collector)
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, reg)
	}

	if cfg.Journal.Enabled {
		journal, err := storage.NewBboltJournal(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("error initializing the journal: %w", err)
		}
		defer journal.Close()
		observers = append(observers, storage.NewJournalObserver(journal, cfg.Variant))
	}

	audioService := newAudio(cfg)
	defer audioService.Close()

	isHeadless, _ := flags.GetBool("headless")
	if isHeadless {
		return runHeadless(cfg, audioService, observers, collector)
	}
	return runTUI(cfg, audioService, observers, collector)
}

func newAudio(cfg domain.Config) ports.AudioService {
	switch cfg.AudioBackend() {
	case domain.AudioBeep:
		return audio.NewBeepAudio()
	case domain.AudioMpv:
		return audio.NewMpvAudio(cfg.MpvSocket)
	default:
		return audio.NewSilentAudio()
	}
}

func newController(cfg domain.Config, scheduler ports.Scheduler, audioService ports.AudioService, notifier ports.Notifier, observer ports.TransitionObserver) (ports.ButtonController, domain.Phase, error) {
	switch cfg.Variant {
	case domain.VariantToggle:
		c, err := button.NewToggleController(audioService, cfg.Resource, notifier, observer, cfg.Messages)
		if err != nil {
			return nil, 0, err
		}
		return c, domain.Paused, nil
	case domain.VariantLoading:
		var l ports.ContentLoader
		if cfg.Resource != "" {
			l = loader.NewAudio(scheduler, audioService, cfg.Resource)
		} else {
			// Nothing to fetch, so the configured backend has nothing to open.
			l = loader.NewSimulated(scheduler, cfg.LoadDelay, audio.NewSilentAudio(), "simulated")
		}
		return button.NewLoadingController(l, notifier, observer, cfg.Messages), domain.Idle, nil
	}
	return nil, 0, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, cfg.Variant)
}

func runTUI(cfg domain.Config, audioService ports.AudioService, observer ports.TransitionObserver, collector *metrics.Collector) error {
	scheduler := ui.NewProgramScheduler()
	toasts := ui.NewToastNotifier()

	controller, initial, err := newController(cfg, scheduler, audioService, toasts, observer)
	if err != nil {
		return err
	}
	collector.SetInitial(initial)

	p := tea.NewProgram(ui.InitialModel(controller, toasts, cfg.Resource), tea.WithAltScreen())
	scheduler.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("oh no, there was an error: %w", err)
	}
	return nil
}

func runHeadless(cfg domain.Config, audioService ports.AudioService, observer ports.TransitionObserver, collector *metrics.Collector) error {
	rl, err := headless.NewReadline()
	if err != nil {
		return err
	}
	defer rl.Close()

	scheduler := headless.NewObservingScheduler(clock.NewRealScheduler())
	notifier := headless.NewPrintNotifier(rl.Stdout())

	controller, initial, err := newController(cfg, scheduler, audioService, notifier, observer)
	if err != nil {
		return err
	}
	collector.SetInitial(initial)

	driver := headless.NewDriver(controller, rl, rl.Stdout())
	scheduler.SetAfter(driver.OnLoaded)
	return driver.Run()
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	logger.Log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Error().Err(err).Msg("Metrics server stopped")
	}
}

func showJournal(path string, limit int) error {
	journal, err := storage.NewBboltJournal(path)
	if err != nil {
		return fmt.Errorf("error opening the journal: %w", err)
	}
	defer journal.Close()

	entries, err := journal.Recent(limit)
	if err != nil {
		return fmt.Errorf("error retrieving the journal: %w", err)
	}

	fmt.Println("--- Recent Transitions ---")
	for i, entry := range entries {
		t := entry.Transition
		fmt.Printf("%d: %s -> %s (%s, %s) %s\n", i+1, t.From, t.To, t.Cause, entry.Variant, entry.At.Format(time.RFC822))
	}
	fmt.Println("--------------------------")
	return nil
}
