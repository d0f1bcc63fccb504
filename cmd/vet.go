package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/depvet/depvet/model"
)

// targetFlags selects the module to verify and the trust store to use.
// Shared by all commands.
type targetFlags struct {
	Dir      string `short:"d" default:"." predictor:"dir" help:"Module directory containing go.mod."`
	Trust    string `predictor:"file" help:"Path to the YAML trust store (default: <user config dir>/depvet/trust.yaml)."`
	ModCache string `help:"Module cache directory (default: GOMODCACHE)."`
}

// setup loads the trust store and prepares the engine over a fresh table.
func (f targetFlags) setup() (*model.Engine, *model.DepTable, error) {
	store, err := model.LoadTrustStore(f.trustPath())
	if err != nil {
		return nil, nil, err
	}
	table := model.NewDepTable()
	engine, err := model.NewEngine(model.EngineConfig{Dir: f.Dir, ModCache: f.ModCache}, table, store)
	if err != nil {
		return nil, nil, err
	}
	return engine, table, nil
}

func (f targetFlags) trustPath() string {
	if f.Trust != "" {
		return f.Trust
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "trust.yaml"
	}
	return filepath.Join(configDir, "depvet", "trust.yaml")
}

// VetCmd is the kong command for the live terminal viewer
type VetCmd struct {
	targetFlags
	Interval time.Duration `default:"250ms" help:"Refresh interval."`
}

// Run verifies the module in the background and shows the results live.
func (c VetCmd) Run() error {
	engine, table, err := c.setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = engine.Run(ctx) }()

	title := engine.MainModule()
	if title == "" {
		abs, err := filepath.Abs(c.Dir)
		if err == nil {
			title = filepath.Base(abs)
		}
	}

	return NewTUIApp(title, table, c.Interval).Run()
}
