package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/services"
	"github.com/yoockh/showcase/internal/utils"
)

const (
	DefaultStream = "uploads:log"
	DefaultGroup  = "upload-log-writers"
)

// UploadLogQueue is an UploadLogService that appends writes to a redis
// stream for UploadLogWorkerPool. Reads go to the wrapped service.
type UploadLogQueue struct {
	Redis  *redis.Client
	Next   services.UploadLogService
	Stream string
}

func NewUploadLogQueue(rdb *redis.Client, next services.UploadLogService) *UploadLogQueue {
	return &UploadLogQueue{Redis: rdb, Next: next, Stream: DefaultStream}
}

func (q *UploadLogQueue) Record(ctx context.Context, e services.UploadEntry) error {
	const op = "UploadLogQueue.Record"

	values, err := entryValues(e)
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "invalid form fields", err)
	}
	if err := q.Redis.XAdd(ctx, &redis.XAddArgs{Stream: q.Stream, Values: values}).Err(); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to queue upload record", err)
	}
	return nil
}

func (q *UploadLogQueue) List(ctx context.Context, recordID string, limit int) ([]models.UploadRecord, error) {
	return q.Next.List(ctx, recordID, limit)
}

// UploadLogWorkerPool drains the stream into the upload log.
type UploadLogWorkerPool struct {
	Redis      *redis.Client
	Log        services.UploadLogService
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *UploadLogWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Log == nil {
		return errors.New("UploadLogWorkerPool missing dependency: Redis/Log must be set")
	}
	if p.Stream == "" {
		p.Stream = DefaultStream
	}
	if p.Group == "" {
		p.Group = DefaultGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *UploadLogWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				if p.handleMsg(ctx, msg) {
					_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
				}
			}
		}
	}
}

// handleMsg reports whether the message is done with. Malformed messages
// are dropped; failed writes stay pending for a later retry.
func (p *UploadLogWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) bool {
	log := p.Logger.WithField("redis_id", msg.ID)

	e, ok := entryFromValues(msg.Values)
	if !ok {
		log.Warn("dropping malformed upload log message")
		return true
	}
	log = log.WithFields(logrus.Fields{"kind": e.Kind, "record_id": e.RecordID})

	if err := p.Log.Record(ctx, e); err != nil {
		if utils.IsCode(err, utils.CodeInvalidArgument) {
			log.WithError(err).Warn("dropping invalid upload record")
			return true
		}
		log.WithError(err).Error("upload log write failed")
		return false
	}
	return true
}

func entryValues(e services.UploadEntry) (map[string]any, error) {
	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"kind":      string(e.Kind),
		"record_id": e.RecordID,
		"file_name": e.FileName,
		"file_path": e.FilePath,
		"file_size": strconv.FormatInt(e.FileSize, 10),
		"mime_type": e.MimeType,
		"fields":    string(fields),
	}, nil
}

func entryFromValues(v map[string]any) (services.UploadEntry, bool) {
	getStr := func(k string) string {
		s, _ := v[k].(string)
		return s
	}

	e := services.UploadEntry{
		Kind:     models.Kind(getStr("kind")),
		RecordID: getStr("record_id"),
		FileName: getStr("file_name"),
		FilePath: getStr("file_path"),
		MimeType: getStr("mime_type"),
	}
	if e.RecordID == "" || e.FilePath == "" {
		return services.UploadEntry{}, false
	}
	e.FileSize, _ = strconv.ParseInt(getStr("file_size"), 10, 64)
	if raw := getStr("fields"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &e.Fields)
	}
	return e, true
}
