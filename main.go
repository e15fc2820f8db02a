package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/glowboard/internal/chart"
	"github.com/olivierh59500/glowboard/internal/config"
	"github.com/olivierh59500/glowboard/internal/dataset"
	"github.com/olivierh59500/glowboard/internal/raster"
)

const logFileName = "glowboard.log"

// setupLogging discards log output unless debug is set, then appends to a file under dir
func setupLogging(debug bool, dir string) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("==== glowboard started %s ====", time.Now().Format(time.RFC3339))
	return f
}

// fatal reports err on stderr as well as the log, which may be discarded
func fatal(err error) {
	log.Print(err)
	fmt.Fprintln(os.Stderr, "glowboard:", err)
	os.Exit(1)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadDatasets returns the built-in tables plus the CSV at csvPath when given.
// A CSV named like a built-in table replaces it.
func loadDatasets(seed int64, csvPath string) ([]*dataset.Dataset, string, error) {
	sets := dataset.Builtins(seed)
	if csvPath == "" {
		return sets, "", nil
	}
	d, err := dataset.LoadCSV(csvPath)
	if err != nil {
		return nil, "", err
	}
	sets, _ = upsertDataset(sets, d)
	return sets, d.Name, nil
}

// writeConfig saves the effective settings so they can be edited and passed back with -config
func writeConfig(cfg config.Config, path string) error {
	if err := cfg.Save(path); err != nil {
		return err
	}
	log.Printf("wrote settings to %s", path)
	return nil
}

// writeSnapshot renders the background headlessly to a PNG file
func writeSnapshot(cfg config.Config, path string, frames int) error {
	canvas, err := raster.Snapshot(raster.SnapshotOptions{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Frames:     frames,
		PointerX:   float64(cfg.Window.Width) / 2,
		PointerY:   float64(cfg.Window.Height) / 2,
		Backdrop:   cfg.BackdropColor(),
		Background: cfg.BackgroundOptions(),
	})
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := canvas.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	configPath := flag.String("config", "", "JSON settings file")
	debug := flag.Bool("debug", false, "write a log file")
	csvPath := flag.String("csv", "", "CSV file to load as an extra dataset")
	snapshot := flag.String("snapshot", "", "render the background to this PNG and exit")
	frames := flag.Int("frames", 120, "frames to simulate for -snapshot")
	exportPath := flag.String("export-chart", "", "render the chart to this PNG and exit")
	configOut := flag.String("write-config", "", "write the effective settings to this JSON file and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	if logFile := setupLogging(*debug, cfg.LogDir); logFile != nil {
		defer logFile.Close()
	}

	if *configOut != "" {
		if err := writeConfig(cfg, *configOut); err != nil {
			fatal(err)
		}
		return
	}

	if *snapshot != "" {
		if err := writeSnapshot(cfg, *snapshot, *frames); err != nil {
			fatal(err)
		}
		return
	}

	sets, initial, err := loadDatasets(cfg.Background.Seed, *csvPath)
	if err != nil {
		fatal(err)
	}
	if initial == "" {
		initial = cfg.Dataset
	}
	b := newBoard(sets, initial, chart.Type(cfg.Chart.Type), cfg.Chart.Animate, ChartFPS)

	if *exportPath != "" {
		if err := exportChart(*exportPath, chart.Build(b.data(), b.chart), b.chart, cfg.Chart.Width, cfg.Chart.Height); err != nil {
			fatal(err)
		}
		return
	}

	dash := NewDashboard(cfg, b)

	// Set up Ebitengine game
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	// Run the game loop
	err = ebiten.RunGame(dash)
	dash.Stop()
	if err != nil {
		fatal(err)
	}
}
