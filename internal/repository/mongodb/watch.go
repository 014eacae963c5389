package mongodb

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ChangeKind classifies a change stream event.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// Change is one document-level change delivered by the store. Doc carries the
// full post-image of the document for added and modified events; it is empty
// for removals.
type Change struct {
	Collection string
	Kind       ChangeKind
	Doc        bson.Raw
}

const watchRetryDelay = 5 * time.Second

// Watcher fans change stream events from several collections into a single
// channel. Per collection, events arrive in the store's commit order; no
// ordering holds across collections, which is fine for consumers that re-read
// aggregate state instead of applying deltas.
type Watcher struct {
	store      *Store
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewWatcher builds a change stream watcher on the shared store.
func NewWatcher(store *Store, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{store: store, retryDelay: watchRetryDelay, logger: logger}
}

// Watch subscribes to the named collections and returns the merged event
// channel. The channel closes once ctx is cancelled and all underlying
// streams have shut down. A broken stream is reopened after a short delay;
// events committed while the stream was down are missed, which the periodic
// sweep compensates for.
func (w *Watcher) Watch(ctx context.Context, collections ...string) <-chan Change {
	ch := make(chan Change, 64)

	var wg sync.WaitGroup
	for _, name := range collections {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			w.watchCollection(ctx, name, ch)
		}(name)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	return ch
}

func (w *Watcher) watchCollection(ctx context.Context, name string, ch chan<- Change) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	for ctx.Err() == nil {
		stream, err := w.store.Collection(name).Watch(ctx, mongo.Pipeline{}, opts)
		if err != nil {
			w.logger.Error("failed to open change stream", zap.String("collection", name), zap.Error(err))
			if !w.pause(ctx) {
				return
			}
			continue
		}

		w.logger.Info("change stream opened", zap.String("collection", name))
		w.consume(ctx, name, stream, ch)
		_ = stream.Close(context.Background())

		// A broken stream waits the same delay as a failed open; reopening
		// immediately against a down store would spin.
		if !w.pause(ctx) {
			return
		}
	}
}

// pause sleeps the retry delay, reporting false once ctx ends.
func (w *Watcher) pause(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(w.retryDelay):
		return true
	}
}

func (w *Watcher) consume(ctx context.Context, name string, stream *mongo.ChangeStream, ch chan<- Change) {
	for stream.Next(ctx) {
		var event struct {
			OperationType string   `bson:"operationType"`
			FullDocument  bson.Raw `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			w.logger.Warn("undecodable change event", zap.String("collection", name), zap.Error(err))
			continue
		}

		kind, ok := changeKind(event.OperationType)
		if !ok {
			continue
		}

		select {
		case ch <- Change{Collection: name, Kind: kind, Doc: event.FullDocument}:
		case <-ctx.Done():
			return
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		w.logger.Error("change stream broken", zap.String("collection", name), zap.Error(err))
	}
}

func changeKind(op string) (ChangeKind, bool) {
	switch op {
	case "insert":
		return ChangeAdded, true
	case "update", "replace":
		return ChangeModified, true
	case "delete":
		return ChangeRemoved, true
	default:
		return "", false
	}
}
