// Package cli implements the schedctl command line.
package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/client"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

type globalOptions struct {
	Server   string
	Timezone string
}

// New builds the schedctl root command.
func New() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "schedctl",
		Short:         "Inspect scheduled events and their live state.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&g.Server, "server", "", "Scheduler API base URL (default from config).")
	cmd.PersistentFlags().StringVar(&g.Timezone, "timezone", "", "IANA timezone for wall-clock times (default from config).")

	AddCommands(cmd, g)
	return cmd
}

func AddCommands(topLevel *cobra.Command, g *globalOptions) {
	addState(topLevel, g)
	addEvents(topLevel, g)
	addPending(topLevel, g)
	addMark(topLevel, g)
}

// resolve merges flags over the loaded config.
func (g *globalOptions) resolve() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if g.Server != "" {
		cfg.Server = g.Server
	}
	if g.Timezone != "" {
		loc, err := time.LoadLocation(g.Timezone)
		if err != nil {
			return nil, err
		}
		cfg.Location = loc
	}
	return cfg, nil
}

func addState(topLevel *cobra.Command, g *globalOptions) {
	var (
		id, start, end, dailyStart, dailyEnd, at string
		completed, watch                         bool
	)

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Evaluate the temporal state of an event",
		Example: `
schedctl state --start 2026-01-08T09:00 --end 2026-01-10T17:00 --daily-start 09:00 --daily-end 17:00
schedctl state --id 3f2c... --watch
schedctl state --start 2026-01-08T09:00 --end 2026-01-08T10:00 --at 2026-01-08T09:45
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.resolve()
			if err != nil {
				return err
			}

			s := &State{Watch: watch, Out: cmd.OutOrStdout()}
			if id != "" {
				ev, err := client.New(cfg.Server, nil).GetEvent(cmd.Context(), id)
				if err != nil {
					return err
				}
				if s.Event, err = ev.Temporal(cfg.Location); err != nil {
					return err
				}
				s.Title = ev.Title
			} else {
				if start == "" || end == "" {
					return errors.New("either --id or both --start and --end are required")
				}
				ev := client.Event{StartDate: start, EndDate: end, IsCompleted: completed}
				if dailyStart != "" || dailyEnd != "" {
					ev.DailyStartTime, ev.DailyEndTime = &dailyStart, &dailyEnd
				}
				if s.Event, err = ev.Temporal(cfg.Location); err != nil {
					return err
				}
			}

			if at != "" {
				if s.At, err = wallclock.ToLocal(at, cfg.Location); err != nil {
					return err
				}
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Fetch the event with this ID from the server.")
	cmd.Flags().StringVar(&start, "start", "", "Event start, YYYY-MM-DDTHH:MM.")
	cmd.Flags().StringVar(&end, "end", "", "Event end, YYYY-MM-DDTHH:MM.")
	cmd.Flags().StringVar(&dailyStart, "daily-start", "", "Daily window opening, HH:MM.")
	cmd.Flags().StringVar(&dailyEnd, "daily-end", "", "Daily window closing, HH:MM.")
	cmd.Flags().BoolVar(&completed, "completed", false, "Treat the event as completed.")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate at this instant instead of now.")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-evaluate every second until the event is over.")

	topLevel.AddCommand(cmd)
}

func addEvents(topLevel *cobra.Command, g *globalOptions) {
	var all bool

	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"ls"},
		Short:   "List events with their live state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.resolve()
			if err != nil {
				return err
			}
			e := &Events{
				Client: client.New(cfg.Server, nil),
				Loc:    cfg.Location,
				All:    all,
				Out:    cmd.OutOrStdout(),
			}
			return e.Do(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed events.")

	topLevel.AddCommand(cmd)
}

func addPending(topLevel *cobra.Command, g *globalOptions) {
	cmd := &cobra.Command{
		Use:   "pending <event id>",
		Short: "List session days waiting for an attendance mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.resolve()
			if err != nil {
				return err
			}
			p := &Pending{Client: client.New(cfg.Server, nil), EventID: args[0], Out: cmd.OutOrStdout()}
			return p.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addMark(topLevel *cobra.Command, g *globalOptions) {
	var notes string

	cmd := &cobra.Command{
		Use:   "mark <event id> <YYYY-MM-DD> <attended|missed|skipped|pending>",
		Short: "Record attendance for one session day",
		Example: `
schedctl mark 3f2c... 2026-01-08 attended --notes "finished chapter 2"
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.resolve()
			if err != nil {
				return err
			}
			m := &Mark{
				Client:  client.New(cfg.Server, nil),
				EventID: args[0],
				Date:    args[1],
				Status:  args[2],
				Out:     cmd.OutOrStdout(),
			}
			if cmd.Flags().Changed("notes") {
				m.Notes = &notes
			}
			return m.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the session; existing notes are kept when omitted.")

	topLevel.AddCommand(cmd)
}

