package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kjeyarn/lending-gateway/client/activity"
	"github.com/kjeyarn/lending-gateway/client/api"
	"github.com/kjeyarn/lending-gateway/client/search"
	"github.com/kjeyarn/lending-gateway/client/store"
)

type Gateway interface {
	BorrowEvent(ctx context.Context, id int) (api.View, error)
	History(ctx context.Context, page int) (api.History, error)
	SearchBooks(ctx context.Context, query string, page int) (api.SearchResult, error)
	RecentActivity(ctx context.Context) ([]api.Activity, error)
	Act(ctx context.Context, eventID int, action string, in api.Input) (api.Result, error)
}

var ErrNotSignedIn = errors.New("not signed in, run `kjeyarn login` first")

type App struct {
	cfg Config
	log *zap.Logger
	in  io.Reader
	out io.Writer

	searchDelay time.Duration
}

func NewApp(cfg Config, log *zap.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		cfg:         cfg,
		log:         log,
		in:          in,
		out:         out,
		searchDelay: search.DefaultDelay,
	}
}

type tokenSession string

func (s tokenSession) Authenticated() bool { return s != "" }

func (a *App) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, a.cfg.statePath(), a.log)
}

// session resolves the token from the environment or the local state.
func (a *App) session(ctx context.Context, st *store.Store) (string, Gateway, error) {
	token := a.cfg.Token
	if token == "" {
		var err error
		if token, err = st.Token(ctx); err != nil {
			return "", nil, err
		}
	}
	if token == "" {
		return "", nil, ErrNotSignedIn
	}
	return token, api.New(ctx, a.cfg.GatewayURL, token, a.timezone()), nil
}

func (a *App) timezone() string {
	if a.cfg.Timezone != "" {
		return a.cfg.Timezone
	}
	if name := time.Local.String(); name != "Local" {
		return name
	}
	return ""
}

// withGateway opens the local state and a signed-in gateway client for fn.
func (a *App) withGateway(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store, token string, gw Gateway) error) error {
	ctx := cmd.Context()
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	token, gw, err := a.session(ctx, st)
	if err != nil {
		return err
	}
	return fn(ctx, st, token, gw)
}

func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kjeyarn",
		Short:         "KjeyArn book lending from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.PersistentFlags().StringVar(&a.cfg.GatewayURL, "gateway", a.cfg.GatewayURL, "gateway base URL")
	root.PersistentFlags().StringVar(&a.cfg.Timezone, "tz", a.cfg.Timezone, "IANA time zone for date checks")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.eventCmd(),
		a.actCmd(),
		a.historyCmd(),
		a.searchCmd(),
		a.activityCmd(),
	)
	return root
}

func (a *App) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store an access token for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := a.readSecret("Access token: ")
			if err != nil {
				return errors.Wrap(err, "read token")
			}
			if _, err := parseClaims(token); err != nil {
				return err
			}
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.SetToken(cmd.Context(), token); err != nil {
				return err
			}
			cmd.Println("Signed in.")
			return nil
		},
	}
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.DeleteToken(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("Signed out.")
			return nil
		},
	}
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who the stored token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			token, _, err := a.session(cmd.Context(), st)
			if err != nil {
				return err
			}
			claims, err := parseClaims(token)
			if err != nil {
				return err
			}
			renderIdentity(a.out, claims)
			return nil
		},
	}
}

func (a *App) eventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event <id>",
		Short: "Show a borrow event and the actions you can take",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withGateway(cmd, func(ctx context.Context, _ *store.Store, _ string, gw Gateway) error {
				v, err := gw.BorrowEvent(ctx, id)
				if err != nil {
					if api.IsStatus(err, http.StatusNotFound) {
						cmd.Printf("Borrow event %d not found.\n", id)
						return nil
					}
					return err
				}
				renderView(a.out, v)
				return nil
			})
		},
	}
}

func (a *App) actCmd() *cobra.Command {
	var in api.Input
	cmd := &cobra.Command{
		Use:   "act <id> <action>",
		Short: "Run a borrow event action",
		Long: "Actions: cancel, accept-meetup, suggest-meetup, accept-suggestion, " +
			"return-detail, receive, report.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withGateway(cmd, func(ctx context.Context, _ *store.Store, _ string, gw Gateway) error {
				res, err := gw.Act(ctx, id, args[1], in)
				if err != nil {
					return err
				}
				renderResult(a.out, res)
				if !res.Success {
					return nil
				}
				activities, err := gw.RecentActivity(ctx)
				if err != nil {
					a.log.Debug("activity after action", zap.Error(err))
					return nil
				}
				renderActivities(a.out, activities, -1)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Reason, "reason", "", "reason for cancel, suggest-meetup or report")
	cmd.Flags().StringVar(&in.Time, "time", "", "time for suggest-meetup or return-detail")
	cmd.Flags().StringVar(&in.Location, "location", "", "location for suggest-meetup or return-detail")
	return cmd
}

func (a *App) historyCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the books you lend and borrow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withGateway(cmd, func(ctx context.Context, _ *store.Store, _ string, gw Gateway) error {
				h, err := gw.History(ctx, page)
				if err != nil {
					return err
				}
				renderHistory(a.out, h)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page")
	return cmd
}

func (a *App) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Search books as you type, one line per keystroke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withGateway(cmd, func(ctx context.Context, _ *store.Store, _ string, gw Gateway) error {
				d := search.New(ctx, func(ctx context.Context, q string) (api.SearchResult, error) {
					return gw.SearchBooks(ctx, q, 0)
				}, search.Config[api.SearchResult]{
					Delay: a.searchDelay,
					OnResult: func(q string, res api.SearchResult) {
						renderSearch(a.out, q, res)
					},
					OnError: func(q string, err error) {
						cmd.Printf("search %q failed: %v\n", q, err)
					},
					OnClear: func() {
						cmd.Println("(cleared)")
					},
				})
				defer d.Close()

				sc := bufio.NewScanner(a.in)
				for sc.Scan() {
					d.Submit(sc.Text())
				}
				d.Flush()
				return sc.Err()
			})
		},
	}
}

func (a *App) activityCmd() *cobra.Command {
	var watch, open bool
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent activity and the unread badge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withGateway(cmd, func(ctx context.Context, st *store.Store, token string, gw Gateway) error {
				if watch {
					p := activity.New(a.log, gw, tokenSession(token), st,
						activity.OnUpdate(func(unread int, activities []api.Activity) {
							renderActivities(a.out, activities, unread)
						}))
					ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer stop()
					if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
						return err
					}
					return nil
				}

				p := activity.New(a.log, gw, tokenSession(token), st)
				if err := p.Poll(ctx); err != nil {
					return err
				}
				unread := p.Unread()
				if open {
					if err := p.Open(ctx, time.Now()); err != nil {
						return err
					}
				}
				renderActivities(a.out, p.Activities(), unread)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep polling every 30s")
	cmd.Flags().BoolVar(&open, "open", false, "mark all activity as seen")
	return cmd
}

func (a *App) readSecret(prompt string) (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = io.WriteString(a.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = io.WriteString(a.out, "\n")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type identity struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	Status string `json:"account_status"`
}

// parseClaims reads the token payload without checking the signature; the
// gateway is the one that verifies it.
func parseClaims(token string) (identity, error) {
	var claims identity
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return identity{}, errors.Wrap(err, "token is not a JWT")
	}
	return claims, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid borrow event id %q", s)
	}
	return id, nil
}
