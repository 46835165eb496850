// Package cli - команды portalctl: отправка форм студента и учителя из терминала.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"eduportal/internal/config"
	"eduportal/internal/entity"
	"eduportal/internal/logger"
	"eduportal/internal/portal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// ErrRejected - форма не принята; текст уже показан пользователю
var ErrRejected = errors.New("submission rejected")

type options struct {
	backendURL string
	timeout    time.Duration
	wait       bool
	logLevel   string
}

// App - зависимости команд. В тестах подменяются часы и вывод.
type App struct {
	Out   io.Writer
	Clock clock.WithDelayedExecution
	Cfg   config.Config

	opts options
	log  *zap.Logger
}

func NewRootCommand(app *App) *cobra.Command {
	if app.Clock == nil {
		app.Clock = clock.RealClock{}
	}

	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Submit student and teacher portal forms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Out == nil {
				app.Out = cmd.OutOrStdout()
			}
			log, err := logger.New(app.opts.logLevel)
			if err != nil {
				return err
			}
			app.log = log
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.opts.backendURL, "backend", app.Cfg.BackendURL, "backend base URL")
	flags.DurationVar(&app.opts.timeout, "timeout", app.Cfg.BackendTimeout, "backend request timeout (0 = none)")
	flags.BoolVar(&app.opts.wait, "wait", true, "wait for the delayed redirect before exiting")
	flags.StringVar(&app.opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newRoleCommand(app, entity.RoleStudent),
		newRoleCommand(app, entity.RoleTeacher),
		newLoginCommand(app),
		newAccountCommand(app),
		newMigrateCommand(app),
	)
	return root
}

func (a *App) handler(role entity.Role) *portal.Handler {
	backend := portal.NewHTTPBackend(a.opts.backendURL, &http.Client{Timeout: a.opts.timeout}, a.log)
	return portal.NewHandler(role, backend, a.log)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}
