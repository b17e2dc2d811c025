package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/livinsalti/salti/internal/feed"
	"github.com/livinsalti/salti/internal/store"
)

var (
	flagFeedAddr     string
	flagFeedInterval int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Run the budget feed service",
	Long: "Serve the current weekly budget over HTTP and stream change events\n" +
		"(SSE) to subscribers as the stored plan updates.",
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&flagFeedAddr, "addr", "", "Listen address (default 127.0.0.1:4877)")
	feedCmd.Flags().IntVar(&flagFeedInterval, "interval", 0, "Poll interval in seconds (default 15)")
	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	st, err := store.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("feed requires the budget db: %w", err)
	}
	defer st.Close()

	fcfg := feed.Config{
		UserID:   sess.cfg.Profile.UserID,
		Addr:     flagFeedAddr,
		Interval: time.Duration(flagFeedInterval) * time.Second,
	}
	if fcfg.Addr == "" {
		fcfg.Addr = sess.cfg.Feed.Addr
	}
	if fcfg.Interval == 0 && sess.cfg.Feed.IntervalSecs > 0 {
		fcfg.Interval = time.Duration(sess.cfg.Feed.IntervalSecs) * time.Second
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := feed.New(fcfg, st)
	if !flagQuiet {
		addr := fcfg.Addr
		if addr == "" {
			addr = "127.0.0.1:4877"
		}
		fmt.Printf("  Budget feed listening on http://%s (Ctrl-C to stop)\n", addr)
	}

	return svc.Run(ctx)
}
