// showcase - an interactive field of textured cubes.
//
// Controls:
//
//	W/A/S/D     - Fly forward/left/back/right
//	Arrow up/dn - Bloom strength up/down
//	Arrow r/l   - Bloom radius up/down
//	Mouse drag  - Orbit around the field
//	Scroll      - Zoom (scrolls the popup while it is open)
//	Click       - Show the content of the clicked cube
//	Esc         - Close the popup
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"cube-showcase/internal/config"
	"cube-showcase/internal/logger"
)

func init() {
	// raylib must be driven from the main OS thread.
	runtime.LockOSThread()
}

var (
	configPath string
	envPath    string
)

func main() {
	root := &cobra.Command{
		Use:           "showcase",
		Short:         "Interactive 3D cube showcase",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML config")
	root.PersistentFlags().StringVar(&envPath, "env", ".env", "Path to a .env file with SHOWCASE_* overrides")
	root.AddCommand(newRunCmd(), newCatalogCmd(), newConfigCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "showcase:", err)
		stop()
		os.Exit(1)
	}
}

// loadPrefs reads the config file, then the .env file and SHOWCASE_* variables on top.
func loadPrefs() (config.Prefs, error) {
	if err := config.LoadDotEnv(envPath); err != nil {
		return config.Prefs{}, err
	}
	p, err := config.Load(configPath)
	if err != nil {
		return p, err
	}
	if err := config.ApplyEnv(&p); err != nil {
		return p, err
	}
	return p, p.Validate()
}

// newLog opens the log file and returns a structured logger writing to it and to stderr.
func newLog(p config.Prefs) *slog.Logger {
	l := logger.New(p.Log.Path, os.Stderr)
	return l.Slog(logger.ParseLevel(p.Log.Level))
}
