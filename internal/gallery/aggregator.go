// Package gallery merges every collection into one tagged list and keeps
// it fresh by polling.
package gallery

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/client"
	"github.com/yoockh/showcase/internal/models"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the outcome of one fan-out. A kind that failed has no items,
// a zero count and an entry in Errors.
type Snapshot struct {
	Items     []Item
	Counts    map[models.Kind]int
	Errors    map[models.Kind]error
	FetchedAt time.Time
}

// Failed lists the kinds that could not be fetched, in models.Kinds order.
func (s Snapshot) Failed() []models.Kind {
	var out []models.Kind
	for _, k := range models.Kinds {
		if s.Errors[k] != nil {
			out = append(out, k)
		}
	}
	return out
}

type source struct {
	kind  models.Kind
	fetch func(ctx context.Context, api *client.Client) ([]Item, error)
}

func sourceFor[T any, PT client.Record[T]]() source {
	return source{
		kind: client.KindOf[T, PT](),
		fetch: func(ctx context.Context, api *client.Client) ([]Item, error) {
			rows, err := client.FetchAll[T, PT](ctx, api)
			if err != nil {
				return nil, err
			}
			items := make([]Item, len(rows))
			for i := range rows {
				items[i] = Describe(PT(&rows[i]))
			}
			return items, nil
		},
	}
}

type Aggregator struct {
	api     *client.Client
	log     *logrus.Logger
	sources []source
	now     func() time.Time
}

func NewAggregator(api *client.Client, log *logrus.Logger) *Aggregator {
	if log == nil {
		log = logrus.New()
	}
	return &Aggregator{
		api: api,
		log: log,
		sources: []source{
			sourceFor[models.Certificate](),
			sourceFor[models.Badge](),
			sourceFor[models.Internship](),
			sourceFor[models.Contribution](),
			sourceFor[models.ContributionCert](),
		},
		now: time.Now,
	}
}

// Fetch reads every collection concurrently. Each kind settles on its own:
// a failure is logged and recorded, and never cancels or hides the others.
func (a *Aggregator) Fetch(ctx context.Context) Snapshot {
	type result struct {
		items []Item
		err   error
	}
	results := make([]result, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		g.Go(func() error {
			items, err := src.fetch(ctx, a.api)
			results[i] = result{items: items, err: err}
			return nil
		})
	}
	_ = g.Wait()

	snap := Snapshot{
		Items:     []Item{},
		Counts:    make(map[models.Kind]int, len(a.sources)),
		Errors:    map[models.Kind]error{},
		FetchedAt: a.now(),
	}
	for i, src := range a.sources {
		r := results[i]
		if r.err != nil {
			a.log.WithError(r.err).WithField("kind", src.kind).Warn("gallery fetch failed")
			snap.Errors[src.kind] = r.err
			snap.Counts[src.kind] = 0
			continue
		}
		snap.Counts[src.kind] = len(r.items)
		snap.Items = append(snap.Items, r.items...)
	}

	sort.SliceStable(snap.Items, func(i, j int) bool {
		return snap.Items[i].CreatedAt.After(snap.Items[j].CreatedAt)
	})
	return snap
}
