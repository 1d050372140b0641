package cli

import (
	"github.com/spf13/cobra"

	"github.com/readingclub/readingclub/internal/club"
)

func (a *app) accountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "account",
		Short:       "Change your username or password",
		Annotations: routed(club.RouteSettings),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "username <new-username>",
		Short: "Change your username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := club.NewAccountSettings(a.api, a.sessions).ChangeUsername(cmd.Context(), args[0]); err != nil {
				return err
			}
			s, _ := a.sessions.Current()
			a.printf("Username changed to %s.\n", s.Username)
			return nil
		},
	})

	var form club.PasswordForm
	password := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if form.Current, err = a.prompt.askIfEmpty(form.Current, "Current password"); err != nil {
				return err
			}
			if form.New, err = a.prompt.askIfEmpty(form.New, "New password"); err != nil {
				return err
			}
			if form.Confirm, err = a.prompt.askIfEmpty(form.Confirm, "Confirm new password"); err != nil {
				return err
			}
			if err := club.NewAccountSettings(a.api, a.sessions).ChangePassword(cmd.Context(), form); err != nil {
				return err
			}
			a.printf("Password changed.\n")
			return nil
		},
	}
	password.Flags().StringVar(&form.Current, "current", "", "current password (prompted when omitted)")
	password.Flags().StringVar(&form.New, "new", "", "new password (prompted when omitted)")
	password.Flags().StringVar(&form.Confirm, "confirm", "", "repeat the new password (prompted when omitted)")
	cmd.AddCommand(password)

	return cmd
}
