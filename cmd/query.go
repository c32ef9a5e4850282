package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jjenkins/rimun/internal/model"
	"github.com/jjenkins/rimun/internal/service"
	"github.com/spf13/cobra"
)

type pageFlags struct {
	limit  int
	offset int
}

func (p *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&p.limit, "limit", "l", service.DefaultLimit, "Maximum number of records")
	cmd.Flags().IntVarP(&p.offset, "offset", "o", service.DefaultOffset, "Number of records to skip")
}

func (p *pageFlags) params() model.PageParams {
	return model.PageParams{Limit: service.Ptr(p.limit), Offset: service.Ptr(p.offset)}
}

var (
	committeesFlags pageFlags
	postsFlags      pageFlags
)

var sessionsFlags struct {
	page   pageFlags
	active bool
}

var delegatesFlags struct {
	session           int64
	delegation        int64
	committee         int64
	country           string
	school            int64
	statusApplication string
	statusHousing     string
	ambassador        bool
	updatedSince      string
	limit             int
	offset            int
}

// interruptContext cancels in-flight requests on SIGINT/SIGTERM
func interruptContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the API health endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptContext(cmd)
		defer stop()

		health, err := newClient().Health(ctx)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		return printJSON(cmd, health)
	},
}

var forumsCmd = &cobra.Command{
	Use:   "forums",
	Short: "List forums",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptContext(cmd)
		defer stop()

		forums, err := newClient().Forums(ctx)
		if err != nil {
			return fmt.Errorf("failed to list forums: %w", err)
		}
		return printJSON(cmd, forums)
	},
}

var committeesCmd = &cobra.Command{
	Use:   "committees",
	Short: "List committees",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptContext(cmd)
		defer stop()

		committees, err := newClient().Committees(ctx, committeesFlags.params())
		if err != nil {
			return fmt.Errorf("failed to list committees: %w", err)
		}
		return printJSON(cmd, committees)
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List conference sessions",
	Long: `List conference sessions.

Without --active every session is listed; --active or --active=false
restrict the listing to active or past sessions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptContext(cmd)
		defer stop()

		params := model.ListSessionsParams{
			Limit:  service.Ptr(sessionsFlags.page.limit),
			Offset: service.Ptr(sessionsFlags.page.offset),
		}
		if cmd.Flags().Changed("active") {
			params.Active = service.Ptr(sessionsFlags.active)
		}

		sessions, err := newClient().Sessions(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		return printJSON(cmd, sessions)
	},
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List news posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptContext(cmd)
		defer stop()

		posts, err := newClient().Posts(ctx, postsFlags.params())
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		return printJSON(cmd, posts)
	},
}

var delegatesCmd = &cobra.Command{
	Use:   "delegates",
	Short: "List delegates",
	Long: `List delegates, optionally filtered.

Only the filters given on the command line are sent to the API.

Examples:
  # First 50 delegates
  rimun delegates

  # Italian ambassadors of session 3
  rimun delegates --session 3 --country IT --ambassador

  # Everything changed since a point in time
  rimun delegates --updated-since 2025-03-01T00:00:00Z --limit 200`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := delegatesParams(cmd)
		if err != nil {
			return err
		}

		ctx, stop := interruptContext(cmd)
		defer stop()

		delegates, err := newClient().Delegates(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list delegates: %w", err)
		}
		return printJSON(cmd, delegates)
	},
}

func delegatesParams(cmd *cobra.Command) (model.ListDelegatesParams, error) {
	f := cmd.Flags()
	params := model.ListDelegatesParams{
		Limit:  service.Ptr(delegatesFlags.limit),
		Offset: service.Ptr(delegatesFlags.offset),
	}

	if f.Changed("session") {
		params.SessionID = service.Ptr(delegatesFlags.session)
	}
	if f.Changed("delegation") {
		params.DelegationID = service.Ptr(delegatesFlags.delegation)
	}
	if f.Changed("committee") {
		params.CommitteeID = service.Ptr(delegatesFlags.committee)
	}
	if f.Changed("country") {
		params.CountryCode = service.Ptr(delegatesFlags.country)
	}
	if f.Changed("school") {
		params.SchoolID = service.Ptr(delegatesFlags.school)
	}
	if f.Changed("status-application") {
		params.StatusApplication = service.Ptr(delegatesFlags.statusApplication)
	}
	if f.Changed("status-housing") {
		params.StatusHousing = service.Ptr(delegatesFlags.statusHousing)
	}
	if f.Changed("ambassador") {
		params.IsAmbassador = service.Ptr(delegatesFlags.ambassador)
	}
	if f.Changed("updated-since") {
		since, err := time.Parse(time.RFC3339, delegatesFlags.updatedSince)
		if err != nil {
			return params, fmt.Errorf("invalid --updated-since (want RFC 3339, e.g. 2025-03-01T00:00:00Z): %w", err)
		}
		params.UpdatedSince = &since
	}

	return params, nil
}

var delegateCmd = &cobra.Command{
	Use:   "delegate <person-id>",
	Short: "Show a single delegate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		personID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid person id %q", args[0])
		}

		ctx, stop := interruptContext(cmd)
		defer stop()

		delegate, err := newClient().DelegateByID(ctx, personID)
		if err != nil {
			return fmt.Errorf("failed to get delegate %d: %w", personID, err)
		}
		return printJSON(cmd, delegate)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd, forumsCmd, committeesCmd, sessionsCmd, postsCmd, delegatesCmd, delegateCmd)

	committeesFlags.bind(committeesCmd)
	postsFlags.bind(postsCmd)
	sessionsFlags.page.bind(sessionsCmd)
	sessionsCmd.Flags().BoolVar(&sessionsFlags.active, "active", false, "Only active (true) or inactive (false) sessions")

	f := delegatesCmd.Flags()
	f.Int64VarP(&delegatesFlags.session, "session", "s", 0, "Session id")
	f.Int64Var(&delegatesFlags.delegation, "delegation", 0, "Delegation id")
	f.Int64Var(&delegatesFlags.committee, "committee", 0, "Committee id")
	f.StringVarP(&delegatesFlags.country, "country", "c", "", "Country code")
	f.Int64Var(&delegatesFlags.school, "school", 0, "School id")
	f.StringVar(&delegatesFlags.statusApplication, "status-application", "", "Application status")
	f.StringVar(&delegatesFlags.statusHousing, "status-housing", "", "Housing status")
	f.BoolVar(&delegatesFlags.ambassador, "ambassador", false, "Only ambassadors (true) or non-ambassadors (false)")
	f.StringVar(&delegatesFlags.updatedSince, "updated-since", "", "Only delegates updated since this RFC 3339 time")
	f.IntVarP(&delegatesFlags.limit, "limit", "l", service.DefaultLimit, "Maximum number of records")
	f.IntVarP(&delegatesFlags.offset, "offset", "o", service.DefaultOffset, "Number of records to skip")
}
