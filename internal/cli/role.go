package cli

import (
	"context"

	"eduportal/internal/entity"
	"eduportal/internal/feedback"
	"eduportal/internal/portal"

	"github.com/spf13/cobra"
	"k8s.io/utils/clock"
)

func newRoleCommand(app *App, role entity.Role) *cobra.Command {
	cmd := &cobra.Command{
		Use:   role.String(),
		Short: "Log in or register as a " + role.String(),
	}
	cmd.AddCommand(newRoleLoginCommand(app, role), newRoleRegisterCommand(app, role))
	return cmd
}

func newRoleLoginCommand(app *App, role entity.Role) *cobra.Command {
	var form entity.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "POST " + role.LoginEndpoint(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.submit(cmd.Context(), role, func(ctx context.Context, p *portal.Page) (portal.Result, clock.Timer) {
				return p.SubmitLogin(ctx, form)
			})
		},
	}
	cmd.Flags().StringVar(&form.ID, "id", "", role.IDField())
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	return cmd
}

func newRoleRegisterCommand(app *App, role entity.Role) *cobra.Command {
	var form entity.RegistrationForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "POST " + role.RegisterEndpoint(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.submit(cmd.Context(), role, func(ctx context.Context, p *portal.Page) (portal.Result, clock.Timer) {
				return p.SubmitRegister(ctx, form)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&form.ID, "id", "", role.IDField())
	flags.StringVar(&form.FullName, "full-name", "", "full name")
	flags.StringVar(&form.Department, "department", "", "department")
	if role == entity.RoleTeacher {
		flags.StringVar(&form.Specialization, "specialization", "", "specialization")
	}
	flags.StringVar(&form.Password, "password", "", "password")
	return cmd
}

// submit отправляет одну форму, печатает баннер и при --wait ждёт перехода
func (a *App) submit(ctx context.Context, role entity.Role, send func(context.Context, *portal.Page) (portal.Result, clock.Timer)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	done := make(chan string, 1)
	view := portal.View{
		Banner: feedback.NewBanner(a.Clock),
		Clock:  a.Clock,
		Navigator: portal.NavigatorFunc(func(path string) {
			done <- path
		}),
	}
	page := portal.NewPage(a.handler(role), view, true, true)

	res, timer := send(ctx, page)
	if msg, ok := view.Banner.Current(); ok {
		a.printf("[%s] %s\n", msg.Severity, msg.Text)
	}

	success, ok := res.(portal.Success)
	if !ok {
		return ErrRejected
	}

	target := a.opts.backendURL + success.RedirectPath
	if !a.opts.wait {
		if timer != nil {
			timer.Stop()
		}
		a.printf("redirect: %s (in %s)\n", target, success.RedirectAfter)
		return nil
	}

	select {
	case <-done:
		a.printf("redirect: %s\n", target)
		return nil
	case <-ctx.Done():
		if timer != nil {
			timer.Stop()
		}
		return ctx.Err()
	}
}
