package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cowork/internal/controller"
	"github.com/desertthunder/cowork/internal/repositories"
	"github.com/desertthunder/cowork/internal/services"
	"github.com/desertthunder/cowork/internal/shared"
	"github.com/urfave/cli/v3"
)

// errActionFailed marks a command whose failure was already reported to the user.
var errActionFailed = errors.New("action failed")

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.ReservationService
	identity   services.OAuthService
	store      repositories.TokenStore
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	storeOnce sync.Once
	storeErr  error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Store is opened lazily from Config.Store on first use. A nil Identity is built from
// Config.Identity when the sign-in command runs.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.ReservationService
	Identity   services.OAuthService
	Store      repositories.TokenStore
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
	if opts.API == nil {
		opts.API = services.NewReservationService(opts.Config.API.BaseURL, opts.Config.API.APIKey, opts.HTTPClient)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		identity:   opts.Identity,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, seatsCommand, reserveCommand, reservationsCommand, statusCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by subsequent commands.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// tokenStore returns the configured token store, opening it on first use.
func (r *Runner) tokenStore(ctx context.Context) (repositories.TokenStore, error) {
	r.storeOnce.Do(func() {
		if r.store != nil {
			return
		}
		r.logger.Debug("opening token store", "driver", r.config.Store.Driver)
		r.store, r.storeErr = repositories.NewTokenStore(ctx, r.config.Store)
	})
	if r.storeErr != nil {
		return nil, fmt.Errorf("failed to open token store: %w", r.storeErr)
	}
	return r.store, nil
}

// controller builds a workflow controller whose alerts are written to notifier.
func (r *Runner) controller(ctx context.Context, notifier controller.Notifier) (*controller.Controller, error) {
	store, err := r.tokenStore(ctx)
	if err != nil {
		return nil, err
	}

	if notifier == nil {
		notifier = controller.NotifierFunc(func(message string) {
			r.writePlain("%s\n", message)
		})
	}

	return controller.New(controller.Options{
		API:      r.api,
		Store:    store,
		Notifier: notifier,
		Logger:   shared.WithLogger(r.logger, "component", "controller"),
	}), nil
}

// session starts a controller and requires a stored token.
func (r *Runner) session(ctx context.Context) (*controller.Controller, error) {
	ctl, err := r.controller(ctx, nil)
	if err != nil {
		return nil, err
	}
	if ctl.Start(ctx) != controller.Dashboard {
		return nil, fmt.Errorf("%w: run 'cowork auth login' first", shared.ErrNotAuthenticated)
	}
	return ctl, nil
}

// Close releases the token store if one was opened.
func (r *Runner) Close() {
	if r.store == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		r.logger.Warn("failed to close token store", "error", err)
	}
	r.store = nil
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

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
