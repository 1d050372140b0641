// Package cli is the club command line front end. Commands are thin: they
// parse arguments, drive a view model from internal/club and print the
// result.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/club"
	"github.com/readingclub/readingclub/internal/config"
	"github.com/readingclub/readingclub/internal/logger"
	"github.com/readingclub/readingclub/internal/session"
)

// Version is printed by the version command. Overridden at link time.
var Version = "dev"

// Command annotations read by the root pre-run hook.
const (
	annRoute = "club/route"
	annAdmin = "club/admin"
)

var (
	errLoginRequired = &club.Notice{Kind: client.KindAuth, Message: "Please log in to continue"}
	errAdminOnly     = &club.Notice{Kind: client.KindForbidden, Message: "Only club admins can do that"}
)

// app holds what a single invocation needs. It is filled in by the root
// pre-run hook.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	apiURL      string
	sessionPath string
	verbose     bool

	log      *logger.Logger
	sessions *session.Manager
	api      *client.Client
	guard    club.Guard
	prompt   *prompter
}

// Run executes the CLI with args and returns the error to report.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	a := &app{in: in, out: out, errOut: errOut, prompt: newPrompter(in, out)}
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "club",
		Short:             "Reading club command line",
		Long:              "Follow the club's reading schedule, record progress and join the discussion.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "API base URL (overrides CLUB_API_URL)")
	flags.StringVar(&a.sessionPath, "session-path", "", "session directory (overrides CLUB_SESSION_PATH)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.versionCommand(),
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.bookCommand(),
		a.weekCommand(),
		a.progressCommand(),
		a.commentsCommand(),
		a.questionsCommand(),
		a.answerCommand(),
		a.searchCommand(),
		a.accountCommand(),
		a.adminCommand(),
	)
	return root
}

// setup loads configuration, opens the session and enforces the command's
// route guard.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.BaseURL = a.apiURL
	}
	if a.sessionPath != "" {
		cfg.SessionPath = a.sessionPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = logger.New(logger.Config{Writer: a.errOut, Format: "pretty", Level: level, NoColor: true})

	backend, err := session.OpenBadger(cfg.SessionPath)
	if err != nil {
		return err
	}
	a.sessions, err = session.NewManager(backend, a.log.Component("session").Logger)
	if err != nil {
		_ = backend.Close()
		return err
	}
	a.guard = club.Guard{Sessions: a.sessions}
	a.api = client.New(client.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Token:   a.sessions.Token,
		Logger:  a.log.Component("client").Logger,
	})

	return a.authorize(cmd)
}

// authorize applies the guard to the command's route annotation, looking up
// the tree so subcommands inherit it.
func (a *app) authorize(cmd *cobra.Command) error {
	var route club.Route
	admin := false
	for c := cmd; c != nil; c = c.Parent() {
		if r, ok := c.Annotations[annRoute]; ok && route == "" {
			route = club.Route(r)
		}
		if c.Annotations[annAdmin] == "true" {
			admin = true
		}
	}

	if route != "" && route != club.RouteLogin && a.guard.Resolve(route) == club.RouteLogin {
		return errLoginRequired
	}
	if admin {
		s, _ := a.sessions.Current()
		if !s.IsAdmin() {
			return errAdminOnly
		}
	}
	return nil
}

func (a *app) close() {
	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil && a.log != nil {
			a.log.Warn("failed to close session store", "error", err)
		}
	}
}

func routed(route club.Route) map[string]string {
	return map[string]string{annRoute: string(route)}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		// No session or config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			a.printf("version: %s\n", Version)
		},
	}
}
