// Package dashboard holds the state of one admin collection view: the
// fetched records, the active query and the last notice shown to the user.
package dashboard

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/catalog"
	"github.com/yoockh/showcase/internal/client"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/utils"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is the feedback line shown after a load or a mutation.
type Notice struct {
	Level   Level
	Message string
	At      time.Time
}

// Collection is safe for concurrent use. Calls that reach the server are
// serialized, so a mutation and its re-fetch never overlap another call.
type Collection[T any, PT client.Record[T]] struct {
	mu     sync.Mutex
	api    *client.Client
	schema catalog.Schema[T]
	log    *logrus.Entry
	now    func() time.Time

	items  []T
	query  catalog.Query
	notice *Notice
	closed atomic.Bool
}

func New[T any, PT client.Record[T]](api *client.Client, schema catalog.Schema[T], log *logrus.Logger) *Collection[T, PT] {
	if log == nil {
		log = logrus.New()
	}
	return &Collection[T, PT]{
		api:    api,
		schema: schema,
		log:    log.WithField("kind", client.KindOf[T, PT]()),
		now:    time.Now,
		items:  []T{},
		query:  catalog.Query{Facets: map[string]string{}},
	}
}

func (d *Collection[T, PT]) Kind() models.Kind { return client.KindOf[T, PT]() }

// Load replaces the collection with the server's. On failure the
// collection becomes empty and the error is kept as the notice.
func (d *Collection[T, PT]) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

func (d *Collection[T, PT]) load(ctx context.Context) error {
	items, err := client.FetchAll[T, PT](ctx, d.api)
	if d.closed.Load() {
		return err
	}
	if err != nil {
		d.log.WithError(err).Warn("collection fetch failed")
		d.items = []T{}
		d.setNotice(LevelError, "Could not load "+d.plural()+": "+utils.SafeMessage(err))
		return err
	}
	d.items = items
	return nil
}

func (d *Collection[T, PT]) Create(ctx context.Context, form models.Form, img *client.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := client.Create[T, PT](ctx, d.api, form, img)
	return d.afterMutation(ctx, "create", err, d.label()+" created")
}

func (d *Collection[T, PT]) Update(ctx context.Context, id string, form models.Form, img *client.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := client.Update[T, PT](ctx, d.api, id, form, img)
	return d.afterMutation(ctx, "update", err, d.label()+" updated")
}

// Delete is irreversible. Callers confirm with the user first.
func (d *Collection[T, PT]) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.api.Delete(ctx, d.Kind(), id)
	return d.afterMutation(ctx, "delete", err, d.label()+" deleted")
}

// afterMutation leaves the collection untouched on failure and re-fetches
// it on success.
func (d *Collection[T, PT]) afterMutation(ctx context.Context, action string, err error, okMsg string) error {
	if err != nil {
		d.log.WithError(err).WithField("action", action).Warn("mutation failed")
		if !d.closed.Load() {
			d.setNotice(LevelError, "Could not "+action+" "+d.label()+": "+utils.SafeMessage(err))
		}
		return err
	}
	if err := d.load(ctx); err != nil {
		return err
	}
	if !d.closed.Load() {
		d.setNotice(LevelInfo, okMsg)
	}
	return nil
}

// Close detaches the view. Results of calls still in flight are dropped.
func (d *Collection[T, PT]) Close() { d.closed.Store(true) }

// Items returns a copy of the whole collection.
func (d *Collection[T, PT]) Items() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]T{}, d.items...)
}

func (d *Collection[T, PT]) SetSearch(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query.Text = text
}

// SetFacet selects value for facet. catalog.All or "" clears it.
func (d *Collection[T, PT]) SetFacet(facet, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value == "" || value == catalog.All {
		delete(d.query.Facets, facet)
		return
	}
	d.query.Facets[facet] = value
}

func (d *Collection[T, PT]) ResetFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = catalog.Query{Facets: map[string]string{}}
}

// Visible is the collection under the current query.
func (d *Collection[T, PT]) Visible() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.schema.Filter(d.items, d.query)
}

func (d *Collection[T, PT]) FacetOptions() map[string][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.schema.FacetOptions(d.items)
}

func (d *Collection[T, PT]) Stats() catalog.Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.schema.Summarize(d.items, d.schema.Filter(d.items, d.query))
}

// Notice returns the last notice, or nil.
func (d *Collection[T, PT]) Notice() *Notice {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.notice == nil {
		return nil
	}
	n := *d.notice
	return &n
}

func (d *Collection[T, PT]) ClearNotice() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notice = nil
}

func (d *Collection[T, PT]) setNotice(level Level, msg string) {
	d.notice = &Notice{Level: level, Message: msg, At: d.now()}
}

func (d *Collection[T, PT]) label() string {
	l := d.Kind().Label()
	return strings.ToUpper(l[:1]) + l[1:]
}

func (d *Collection[T, PT]) plural() string { return d.Kind().Label() + "s" }
