package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lmicro/gomero/internal/client"
	"github.com/lmicro/gomero/internal/gateway"
	"github.com/lmicro/gomero/internal/shared"
	"github.com/lmicro/gomero/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	conn       *client.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.ImportEngine
	progress   chan tasks.ProgressUpdate
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Conn       *client.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		conn:       opts.Conn,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		progress:   make(chan tasks.ProgressUpdate, 64),
	}

	if r.conn != nil {
		r.engine = tasks.NewImportEngine(r.conn, r.logger, r.progress)
	}

	return r
}

// SetLogger swaps the runner's logger, propagating it to the engine.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.conn != nil {
		r.engine = tasks.NewImportEngine(r.conn, logger, r.progress)
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, browseCommand, searchCommand, annotateCommand,
		roiCommand, importCommand, exportCommand, cacheCommand, openCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// reloadConfig replaces the runner's config with the file named by the
// command's config flag when it exists on disk.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current settings", "path", path, "error", err)
		return
	}
	r.config = config
	r.configPath = path
}

// connect establishes a gateway session, reusing an existing one when possible.
//
// Resolution order: an already connected client, a saved session file, then
// ice.config credentials. Password login goes through 'gomero auth login'.
func (r *Runner) connect(ctx context.Context, cmd *cli.Command) (*client.Client, error) {
	if r.conn != nil && r.conn.Connected() {
		return r.conn, nil
	}

	r.reloadConfig(cmd)

	gw := gateway.New(gateway.Opts{
		BaseURL:    r.config.Server.BaseURL(),
		HTTPClient: r.httpClient,
		Logger:     r.logger,
	})

	if path := r.config.Credentials.SessionFile; path != "" {
		if data, err := os.ReadFile(path); err == nil {
			token := strings.TrimSpace(string(data))
			if token != "" {
				gw.SetSessionToken(token)
				r.logger.Debug("restored session", "file", path)
				r.attach(client.New(gw, r.logger))
				return r.conn, nil
			}
		}
	}

	if path := r.config.Credentials.IceConfig; path != "" {
		ice, err := shared.LoadIceConfig(path)
		if err != nil {
			return nil, err
		}
		if err := gw.Login(ctx, ice.User, ice.Password); err != nil {
			return nil, err
		}
		r.logger.Info("connected", "user", ice.User)
		r.attach(client.New(gw, r.logger))
		return r.conn, nil
	}

	return nil, fmt.Errorf("%w: no session file or ice.config configured, run 'gomero auth login'", shared.ErrMissingCredentials)
}

// attach wires a connected client into the runner and rebuilds the engine.
func (r *Runner) attach(conn *client.Client) {
	r.conn = conn
	r.engine = tasks.NewImportEngine(conn, r.logger, r.progress)
}

// saveSession persists the gateway session token for later invocations.
func (r *Runner) saveSession(token string) error {
	path := r.config.Credentials.SessionFile
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	r.logger.Info("session saved", "file", path)
	return nil
}

// saveJSON writes data to {prefix}_{unix}.json when the save flag is set.
func (r *Runner) saveJSON(cmd *cli.Command, prefix string, data any) {
	if !cmd.Bool("save") {
		return
	}

	output, err := shared.MarshalJSON(data, true)
	if err != nil {
		r.logger.Warn("failed to serialize response for saving", "error", err)
		return
	}

	path := fmt.Sprintf("%s_%d.json", prefix, time.Now().Unix())
	if err := os.WriteFile(path, output, 0644); err != nil {
		r.logger.Warn("failed to save response", "path", path, "error", err)
		return
	}
	r.logger.Info("response saved", "path", path)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
