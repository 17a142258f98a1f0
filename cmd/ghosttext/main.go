package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atinylittleshell/ghosttext/internal/autocomplete"
	"github.com/atinylittleshell/ghosttext/internal/config"
	"github.com/atinylittleshell/ghosttext/internal/core"
	"github.com/atinylittleshell/ghosttext/internal/editor"
	"github.com/atinylittleshell/ghosttext/internal/styles"
)

var BUILD_VERSION = "dev"

var endpointFlag = flag.String("endpoint", "", "autocomplete server URL (overrides config)")
var debounceFlag = flag.Duration("debounce", 0, "quiet period before requesting a suggestion (overrides config)")
var configFlag = flag.String("config", "", "config file path (default ~/.ghosttext/config.yaml)")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

var errNotTerminal = errors.New("ghosttext needs an interactive terminal")

const helpText = `ghosttext - A terminal editor with inline AI code suggestions

USAGE:
  ghosttext [options] [file]

KEYS:
  tab         accept the gray suggestion (inserts a tab when none is shown)
  esc         dismiss the suggestion
  ctrl+s      save
  ctrl+k      command palette
  ctrl+v      paste
  ctrl+q      quit

Suggestions come from an autocomplete server (see ghosttextd).
Logs are written to ~/.ghosttext/ghosttext.log.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = core.ConfigFile()
	}

	result, err := loadConfig(configPath, *endpointFlag, *debounceFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}

	logger, err := initializeLogger(result.Config.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new ghosttext session --------", zap.Any("args", os.Args))

	for _, configErr := range result.Errors {
		logger.Warn("config error", zap.String("path", configPath), zap.Error(configErr))
		fmt.Fprintln(os.Stderr, styles.WARNING("config: "+configErr.Error()))
	}

	if err := run(result.Config, flag.Arg(0), logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		if errors.Is(err, errNotTerminal) {
			fmt.Fprintln(os.Stderr, styles.HINT("run ghosttext -h for usage"))
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(path string, endpoint string, debounce time.Duration) (*config.LoadResult, error) {
	result, err := config.NewLoader(nil).LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := result.Config.ApplyOverrides(endpoint, debounce); err != nil {
		return nil, fmt.Errorf("invalid flag: %w", err)
	}
	return result, nil
}

func run(cfg *config.Config, path string, logger *zap.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	clientConfig := cfg.ClientConfig()
	clientConfig.Logger = logger.Named("autocomplete")
	client := autocomplete.NewClient(clientConfig)

	model, err := editor.New(editor.Config{
		Path:          path,
		Completer:     client,
		DebounceDelay: cfg.Debounce,
		OverlayStyle:  cfg.OverlayStyle(),
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize editor: %w", err)
	}
	defer model.Close()

	logger.Info("editor started",
		zap.String("path", path),
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("debounce", cfg.Debounce),
	)

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func initializeLogger(level string) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	// Logs only go to file to avoid interfering with the Bubble Tea UI.
	loggerConfig.OutputPaths = []string{core.LogFile()}
	loggerConfig.ErrorOutputPaths = []string{core.LogFile()}

	return loggerConfig.Build()
}
