package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/cache"
	"github.com/Navaneeth-Nair/Neuromate/internal/calendar"
	"github.com/Navaneeth-Nair/Neuromate/internal/config"
	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
	"github.com/Navaneeth-Nair/Neuromate/internal/logging"
	"github.com/Navaneeth-Nair/Neuromate/internal/persistence/postgres"
)

// levelGlyphs renders heatmap levels 0 through 4.
var levelGlyphs = [...]string{".", "░", "▒", "▓", "█"}

var weekdayLabels = [7]string{"Mon", "   ", "Wed", "   ", "Fri", "   ", "Sun"}

func newCalendarCmd(cfg *config.Config) *cobra.Command {
	var (
		userID string
		year   int
		tz     string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a user's contribution calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			if cfg.PostgresURL == "" {
				return errors.New("--database or POSTGRES_URL is required")
			}
			if tz == "" {
				tz = cfg.CalendarTimezone
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz: %w", err)
			}
			today := time.Now().In(loc)
			if year == 0 {
				year = today.Year()
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.PostgresURL)
			if err != nil {
				return fmt.Errorf("connect to postgres: %w", err)
			}
			defer pool.Close()

			service := domain.NewService(postgres.NewRepository(pool), cache.NoopInvalidator{},
				auth.NewIssuer(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL}))
			aggregator := calendar.NewAggregator(service,
				calendar.WithLogger(logging.Must(cfg.LogLevel)),
				calendar.WithLocation(loc),
				calendar.WithFetchTimeout(cfg.CalendarFetchTimeout),
			)

			cal, err := aggregator.Build(ctx, calendar.Request{UserID: userID, Year: year, Today: today, Location: loc})
			if err != nil {
				return err
			}
			renderCalendar(cmd.OutOrStdout(), cal)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (defaults to the current year)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone (defaults to CALENDAR_TIMEZONE)")
	return cmd
}

// renderCalendar draws the grid with one row per weekday and one column per week.
func renderCalendar(w io.Writer, cal *calendar.Calendar) {
	weeks := len(cal.Grid.Weeks)

	header := []rune(strings.Repeat(" ", weeks+3))
	for _, label := range cal.Grid.MonthLabels {
		for i, r := range label.Label {
			header[label.WeekIndex+i] = r
		}
	}
	fmt.Fprintf(w, "%d (%s)\n", cal.Year, cal.Location)
	fmt.Fprintf(w, "    %s\n", strings.TrimRight(string(header), " "))

	for weekday := 0; weekday < 7; weekday++ {
		var row strings.Builder
		for week := 0; week < weeks; week++ {
			day := cal.Cell(week, weekday)
			if day == nil {
				row.WriteString(" ")
				continue
			}
			row.WriteString(levelGlyphs[day.Level])
		}
		fmt.Fprintf(w, "%s %s\n", weekdayLabels[weekday], strings.TrimRight(row.String(), " "))
	}

	fmt.Fprintf(w, "%d activities\n", cal.Grid.TotalActivities)
	if len(cal.DegradedCategories) > 0 {
		names := make([]string, 0, len(cal.DegradedCategories))
		for _, c := range cal.DegradedCategories {
			names = append(names, string(c))
		}
		fmt.Fprintf(w, "unavailable: %s\n", strings.Join(names, ", "))
	}
}
