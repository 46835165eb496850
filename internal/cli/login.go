package cli

import (
	"database/sql"
	"errors"

	"eduportal/internal/database"
	"eduportal/internal/entity"
	"eduportal/internal/redirector"
	"eduportal/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type labelNavigator struct {
	app *App
}

func (n labelNavigator) Navigate(path string) {
	n.app.printf("redirect: %s\n", path)
}

func newLoginCommand(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with the shared login form and print the dashboard for the account role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			return app.redirect(repository.NewAccountRepository(db), username, password)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func (a *App) redirect(checker redirector.CredentialChecker, username, password string) error {
	label := &redirector.ErrorLabel{}
	if _, err := redirector.New(checker, label, labelNavigator{app: a}, a.log).Submit(username, password); err != nil {
		var accErr *repository.AccountError
		if !errors.As(err, &accErr) {
			return err
		}
		a.printf("[%s] %s\n", entity.SeverityError, label.Text())
		return ErrRejected
	}
	return nil
}

func newAccountCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts for the shared login form",
	}

	var username, password, roleStr, fullName string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := entity.ParseRole(roleStr)
			if err != nil {
				return err
			}

			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			user, err := repository.NewAccountRepository(db).CreateAccount(username, password, role, fullName)
			if err != nil {
				return err
			}
			app.printf("created %s (%s, id %d)\n", user.Username, user.Role, user.ID)
			return nil
		},
	}
	add.Flags().StringVar(&username, "username", "", "username")
	add.Flags().StringVar(&password, "password", "", "password")
	add.Flags().StringVar(&roleStr, "role", string(entity.RoleStudent), "student or teacher")
	add.Flags().StringVar(&fullName, "full-name", "", "full name")

	cmd.AddCommand(add)
	return cmd
}

func newMigrateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the accounts schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(db, app.log)
		},
	}
}

func (a *App) openDB() (*sql.DB, error) {
	db, err := database.Open(a.Cfg.DB, a.log)
	if err != nil {
		a.log.Debug("db open failed", zap.Error(err))
		return nil, err
	}
	return db, nil
}
