package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/services"
	"github.com/yoockh/showcase/internal/utils"
)

type fakeLog struct {
	entries []services.UploadEntry
	err     error
}

func (f *fakeLog) Record(_ context.Context, e services.UploadEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeLog) List(context.Context, string, int) ([]models.UploadRecord, error) {
	return []models.UploadRecord{{ID: "row-1"}}, nil
}

func newPool(l services.UploadLogService) (*UploadLogWorkerPool, *test.Hook) {
	log, hook := test.NewNullLogger()
	return &UploadLogWorkerPool{Log: l, Logger: log}, hook
}

func TestHandleMsgWritesEntry(t *testing.T) {
	entry := services.UploadEntry{
		Kind:     models.KindContribution,
		RecordID: "65f0c0ffee",
		FileName: "talk.png",
		FilePath: "/uploads/talk.png",
		FileSize: 2048,
		MimeType: "image/png",
		Fields:   models.Form{"title": "GopherCon talk"},
	}
	values, err := entryValues(entry)
	require.NoError(t, err)

	fl := &fakeLog{}
	p, _ := newPool(fl)
	assert.True(t, p.handleMsg(context.Background(), redis.XMessage{ID: "1-0", Values: values}))

	require.Len(t, fl.entries, 1)
	assert.Equal(t, entry, fl.entries[0])
}

func TestHandleMsgDropsMalformed(t *testing.T) {
	fl := &fakeLog{}
	p, hook := newPool(fl)

	done := p.handleMsg(context.Background(), redis.XMessage{ID: "1-0", Values: map[string]any{"kind": "badge"}})
	assert.True(t, done)
	assert.Empty(t, fl.entries)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestHandleMsgKeepsFailedWritePending(t *testing.T) {
	values, err := entryValues(services.UploadEntry{RecordID: "r1", FilePath: "/uploads/a.png"})
	require.NoError(t, err)

	p, hook := newPool(&fakeLog{err: errors.New("pg down")})
	assert.False(t, p.handleMsg(context.Background(), redis.XMessage{ID: "1-0", Values: values}))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	p, _ = newPool(&fakeLog{err: utils.E(utils.CodeInvalidArgument, "test", "bad", nil)})
	assert.True(t, p.handleMsg(context.Background(), redis.XMessage{ID: "1-0", Values: values}))
}

func TestQueueListReadsThrough(t *testing.T) {
	q := NewUploadLogQueue(nil, &fakeLog{})
	rows, err := q.List(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Equal(t, "row-1", rows[0].ID)
}

func TestStartNeedsDependencies(t *testing.T) {
	p := &UploadLogWorkerPool{}
	assert.Error(t, p.Start(context.Background()))
}
