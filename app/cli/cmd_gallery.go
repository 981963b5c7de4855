package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoockh/showcase/internal/catalog"
	"github.com/yoockh/showcase/internal/gallery"
	"github.com/yoockh/showcase/internal/render"
)

func (a *cli) galleryCmd() *cobra.Command {
	var (
		ff          filterFlags
		watch       bool
		interval    time.Duration
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Show every kind in one list, optionally refreshing it",
		Long: `Fetches all five collections at once. A kind that fails to load is
reported and shown as empty; the others are still displayed.

Filter by kind with --facet dataType=<kind>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := render.ParseMode(ff.view)
			if err != nil {
				return err
			}
			facets, err := parsePairs(ff.facets)
			if err != nil {
				return err
			}
			q := catalog.Query{Text: ff.query, Facets: facets}
			r := render.New(mode, a.width)
			agg := gallery.NewAggregator(a.api, a.log)

			if !watch {
				printSnapshot(cmd.OutOrStdout(), r, agg.Fetch(cmd.Context()), q)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				srv := &http.Server{Addr: metricsAddr, Handler: a.metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.log.WithError(err).Error("metrics server failed")
					}
				}()
				defer srv.Close()
			}

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			p := gallery.NewPoller(agg, interval, func(s gallery.Snapshot) {
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintf(out, "\n--- %s ---\n", s.FetchedAt.Local().Format("15:04:05"))
				printSnapshot(out, r, s, q)
			}, a.log)

			p.Start(ctx)
			<-ctx.Done()
			p.Stop()
			return nil
		},
	}
	ff.bind(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", a.cfg.PollInterval, "refresh interval for --watch")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve fetch metrics on this address while watching, e.g. :9090")
	return cmd
}

func printSnapshot(w io.Writer, r *render.Renderer, s gallery.Snapshot, q catalog.Query) {
	for _, k := range s.Failed() {
		fmt.Fprintf(w, "error: could not load %ss\n", k.Label())
	}
	visible := gallery.ItemSchema.Filter(s.Items, q)
	fmt.Fprint(w, r.Stats(gallery.ItemSchema.Summarize(s.Items, visible), "dataType"))
	fmt.Fprint(w, r.Render(visible))
}
