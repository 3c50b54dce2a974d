package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/weatherpanel/internal/config"
	"github.com/muurk/weatherpanel/internal/discovery"
	"github.com/muurk/weatherpanel/internal/display"
	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/logging"
	"github.com/muurk/weatherpanel/internal/metrics"
	"github.com/muurk/weatherpanel/internal/remote"
	"github.com/muurk/weatherpanel/internal/sim"
	"github.com/muurk/weatherpanel/internal/version"
)

// Run command flags
var (
	remoteEnabled bool
	remoteAddr    string
	noAnnounce    bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(gpioCmd)

	for _, cmd := range []*cobra.Command{runCmd, gpioCmd} {
		cmd.Flags().BoolVar(&remoteEnabled, "remote", false, "Serve the panel over websocket for remote viewers")
		cmd.Flags().StringVar(&remoteAddr, "remote-addr", "", "Remote panel listen address (overrides config)")
		cmd.Flags().BoolVar(&noAnnounce, "no-announce", false, "Do not announce the remote panel via mDNS")
	}
}

// runCmd launches the terminal simulator
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the panel in a terminal simulator",
	Long: `Run the weather panel in a terminal simulator.

Keys 1 and 2 tap the two buttons, b holds both long enough to return to
the menu, and q quits. With --remote the panel is also served over
websocket and announced via mDNS so 'weatherpanel scan' can find it.`,
	Example: `  # Launch the simulator
  weatherpanel run
  # Or simply (run is default):
  weatherpanel

  # Also serve the panel on port 8080
  weatherpanel run --remote

  # Debug logging to a file
  weatherpanel run --log-level debug --log-file /tmp/panel.log`,
	RunE: runSimulator,
}

// gpioCmd runs the panel with physical buttons
var gpioCmd = &cobra.Command{
	Use:   "gpio",
	Short: "Run the panel with hardware buttons",
	Long: `Run the weather panel reading two momentary buttons from GPIO pins.

Buttons are wired between the configured pins and ground; the internal
pull-ups are enabled. Every frame is printed to stdout.`,
	Example: `  # Default pins (GPIO17, GPIO27)
  weatherpanel gpio

  # Custom pins and remote panel
  WEATHERPANEL_BUTTON1_PIN=GPIO5 weatherpanel gpio --remote`,
	RunE: runGPIO,
}

func runSimulator(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := initLogging(cfg, true); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	panel := newPanel()
	b1 := input.NewSimLine(nil)
	b2 := input.NewSimLine(nil)
	m := metrics.New(nil)

	runner, err := newRunner(cfg, b1, b2, panel, m)
	if err != nil {
		return err
	}

	model := sim.NewModel(panel, b1, b2, cfg.Timing.LongPress)

	var background []<-chan error
	if remoteEnabled {
		done, port, err := startRemote(ctx, cfg, panel, b1, b2, m)
		if err != nil {
			return err
		}
		background = append(background, done)
		model = model.WithFooter(fmt.Sprintf("remote panel: ws://localhost:%d/ws", port))
	}

	background = append(background, goRun(func() error { return runner.Run(ctx) }))

	simErr := sim.Run(ctx, panel, model)
	cancel()
	return errors.Join(simErr, waitAll(background))
}

func runGPIO(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := initLogging(cfg, false); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b1, b2, err := input.OpenGPIOLines(cfg.Buttons.Button1Pin, cfg.Buttons.Button2Pin)
	if err != nil {
		return fmt.Errorf("failed to open buttons: %w", err)
	}
	logging.Info("Buttons ready",
		zap.String("button1", b1.Name()),
		zap.String("button2", b2.Name()),
	)

	panel := newPanel()
	out := cmd.OutOrStdout()
	unsubscribe := panel.Subscribe(func(f display.Frame) {
		fmt.Fprintln(out, f.Text())
	})
	defer unsubscribe()

	// Remote presses are merged with the hardware buttons
	remote1 := input.NewSimLine(nil)
	remote2 := input.NewSimLine(nil)
	m := metrics.New(nil)

	runner, err := newRunner(cfg, input.AnyOf(b1, remote1), input.AnyOf(b2, remote2), panel, m)
	if err != nil {
		return err
	}

	var background []<-chan error
	if remoteEnabled {
		done, _, err := startRemote(ctx, cfg, panel, remote1, remote2, m)
		if err != nil {
			return err
		}
		background = append(background, done)
	}

	runErr := runner.Run(ctx)
	cancel()
	return errors.Join(runErr, waitAll(background))
}

// startRemote binds the remote panel, announces it and serves it until ctx
// is canceled. It returns the serve result channel and the bound port.
func startRemote(ctx context.Context, cfg *config.Config, panel *display.Panel, b1, b2 *input.SimLine, m *metrics.Metrics) (<-chan error, int, error) {
	addr := cfg.Remote.Addr
	if remoteAddr != "" {
		addr = remoteAddr
	}

	srv := remote.New(remote.Config{Addr: addr, LongPress: cfg.Timing.LongPress}, panel, b1, b2, m)
	if err := srv.Listen(); err != nil {
		return nil, 0, err
	}
	port := srv.Port()

	var announcement *discovery.Announcement
	if cfg.Remote.Announce && !noAnnounce {
		a, err := discovery.Announce(cfg.Remote.Name, port, map[string]string{"version": version.Version})
		if err != nil {
			// The panel still works by address
			logging.Warn("Failed to announce remote panel", zap.Error(err))
		} else {
			announcement = a
		}
	}

	done := goRun(func() error {
		defer announcement.Shutdown()
		return srv.Serve(ctx)
	})
	return done, port, nil
}

func goRun(fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()
	return done
}

func waitAll(chans []<-chan error) error {
	var errs []error
	for _, ch := range chans {
		errs = append(errs, <-ch)
	}
	return errors.Join(errs...)
}
