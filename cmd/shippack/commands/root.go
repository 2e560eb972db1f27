package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/piwi3910/ShipPack/internal/importer"
	"github.com/piwi3910/ShipPack/internal/model"
	"github.com/piwi3910/ShipPack/internal/project"
)

// CurrentVersion is reported by --version and attached to traces.
const CurrentVersion = "0.3.0"

// Viper keys. Each maps to the SHIPPACK_ environment variable of the same
// name with dots replaced by underscores, e.g. SHIPPACK_ANNEAL_ALPHA.
const (
	keyCatalog   = "catalog"
	keyOutputDir = "output_dir"
	keyC0        = "anneal.c0"
	keyCMin      = "anneal.cmin"
	keyAlpha     = "anneal.alpha"
	keySteps     = "anneal.steps"
	keyPrecision = "anneal.precision"
	keySeed      = "anneal.seed"
)

// app carries state shared by every subcommand.
type app struct {
	v             *viper.Viper
	cfgFile       string
	appConfigPath string
	verbose       bool

	logger *slog.Logger
	appCfg model.AppConfig
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with a fresh configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "shippack",
		Short: "Pack boxes into as little package area as possible",
		Long: `ShipPack assigns rectangular boxes to packages from a catalog and
anneals the layout to minimize the total package area.

Configuration is read from flags, SHIPPACK_* environment variables
(a .env file in the working directory is honored), an optional --config
YAML file and the persisted app config, in that order of precedence.`,
		Version:           CurrentVersion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.StringVar(&a.appConfigPath, "app-config", "", "persisted app config (default ~/.shippack/config.json)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log every temperature step")
	pf.String("catalog", "", "package catalog file (.yaml, .yml or .json)")
	pf.String("output-dir", "", "directory for result files")

	defaults := model.DefaultAnnealSettings()
	pf.Float64("c0", defaults.InitialControl, "initial control parameter")
	pf.Float64("cmin", defaults.MinControl, "minimum control parameter")
	pf.Float64("alpha", defaults.Alpha, "cooling factor in (0, 1)")
	pf.Int("steps", defaults.StepsPerTemperature, "proposals per temperature")
	pf.Float64("precision", defaults.Precision, "grid step for sampled x-centers")
	pf.Int64("seed", defaults.Seed, "random seed, 0 picks one from the clock")

	bindings := map[string]string{
		keyCatalog:   "catalog",
		keyOutputDir: "output-dir",
		keyC0:        "c0",
		keyCMin:      "cmin",
		keyAlpha:     "alpha",
		keySteps:     "steps",
		keyPrecision: "precision",
		keySeed:      "seed",
	}
	bindFlags(a.v, pf, bindings)

	rootCmd.AddCommand(newPackCmd(a))
	rootCmd.AddCommand(newCompareCmd(a))
	rootCmd.AddCommand(newCatalogCmd(a))
	return rootCmd
}

// bindFlags binds each viper key to the named flag. Unknown flag names are a
// programming error and panic at startup.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, bindings map[string]string) {
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			panic(fmt.Sprintf("flag %q not defined", name))
		}
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if a.appConfigPath == "" {
		a.appConfigPath = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.appConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load app config %s: %w", a.appConfigPath, err)
	}
	a.appCfg = cfg

	// Persisted preferences sit below env, config file and flags.
	settings := model.DefaultAnnealSettings()
	cfg.ApplyToSettings(&settings)
	a.v.SetDefault(keyOutputDir, cfg.OutputDir)
	a.v.SetDefault(keyC0, settings.InitialControl)
	a.v.SetDefault(keyCMin, settings.MinControl)
	a.v.SetDefault(keyAlpha, settings.Alpha)
	a.v.SetDefault(keySteps, settings.StepsPerTemperature)
	a.v.SetDefault(keyPrecision, settings.Precision)
	a.v.SetDefault(keySeed, settings.Seed)

	a.v.SetEnvPrefix("SHIPPACK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", a.cfgFile, err)
		}
		a.logger.Debug("config loaded", "file", a.v.ConfigFileUsed())
	}
	return nil
}

// settings resolves the cooling schedule. A zero seed is replaced with one
// derived from the clock and logged so the run can be repeated.
func (a *app) settings() model.AnnealSettings {
	s := model.AnnealSettings{
		InitialControl:      a.v.GetFloat64(keyC0),
		MinControl:          a.v.GetFloat64(keyCMin),
		Alpha:               a.v.GetFloat64(keyAlpha),
		StepsPerTemperature: a.v.GetInt(keySteps),
		Precision:           a.v.GetFloat64(keyPrecision),
		Seed:                a.v.GetInt64(keySeed),
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
		a.logger.Info("no seed given, using clock", "seed", s.Seed)
	}
	return s
}

// catalog returns the catalog file named by --catalog, or the persisted one.
func (a *app) catalog() (model.Catalog, error) {
	if path := a.v.GetString(keyCatalog); path != "" {
		return project.LoadCatalog(path)
	}
	return a.appCfg.Catalog, nil
}

// loadBoxes imports a box list, logging warnings and failing on row errors.
func (a *app) loadBoxes(path string) ([]model.BoxSpec, error) {
	res := importer.ImportFile(path)
	for _, w := range res.Warnings {
		a.logger.Warn("import warning", "file", path, "detail", w)
	}
	if len(res.Errors) > 0 {
		var err error
		for _, e := range res.Errors {
			err = multierr.Append(err, errors.New(e))
		}
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	if len(res.Boxes) == 0 {
		return nil, fmt.Errorf("no boxes found in %s", path)
	}
	a.logger.Debug("boxes imported", "file", path, "boxes", len(res.Boxes))
	return res.Boxes, nil
}
