package cli

import (
	"github.com/spf13/cobra"

	"github.com/readingclub/readingclub/internal/club"
)

func (a *app) registerCommand() *cobra.Command {
	var form club.RegisterForm

	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Create an account and log in",
		Annotations: routed(club.RouteLogin),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.alreadySignedIn() {
				return nil
			}
			var err error
			if form.Username, err = a.prompt.askIfEmpty(form.Username, "Username"); err != nil {
				return err
			}
			if form.Password, err = a.prompt.askIfEmpty(form.Password, "Password"); err != nil {
				return err
			}
			if form.ConfirmPassword, err = a.prompt.askIfEmpty(form.ConfirmPassword, "Confirm password"); err != nil {
				return err
			}

			s, err := club.NewAuthFlow(a.api, a.sessions).Register(cmd.Context(), form)
			if err != nil {
				return err
			}
			a.printf("Welcome, %s!\n", s.Username)
			if s.IsAdmin() {
				a.printf("You are the club admin.\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "email address (optional)")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "repeat the password (prompted when omitted)")
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Log in",
		Annotations: routed(club.RouteLogin),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.alreadySignedIn() {
				return nil
			}
			var err error
			if username, err = a.prompt.askIfEmpty(username, "Username"); err != nil {
				return err
			}
			if password, err = a.prompt.askIfEmpty(password, "Password"); err != nil {
				return err
			}

			s, err := club.NewAuthFlow(a.api, a.sessions).Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			a.printf("Logged in as %s.\n", s.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

// alreadySignedIn reports, and tells the member, when the login screen
// would be skipped.
func (a *app) alreadySignedIn() bool {
	if a.guard.Resolve(club.RouteLogin) == club.RouteLogin {
		return false
	}
	s, _ := a.sessions.Current()
	a.printf("Already logged in as %s. Run \"club logout\" first to switch accounts.\n", s.Username)
	return true
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := club.NewAuthFlow(a.api, a.sessions).Logout(); err != nil {
				return err
			}
			a.printf("Logged out.\n")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the logged in member",
		Annotations: routed(club.RouteSettings),
		Args:        cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, _ := a.sessions.Current()
			a.printf("%s (%s)\n", s.Username, s.Role)
			if s.Email != "" {
				a.printf("Email: %s\n", s.Email)
			}
			a.printf("Current chapter: %d\n", s.Progress)
			a.printf("Session expires: %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}
