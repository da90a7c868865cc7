package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/logging"
)

// DefaultSettleDelay batches the burst of file events a single commit produces.
const DefaultSettleDelay = 75 * time.Millisecond

// ChangeFeed notifies subscribers when stored rules change. Writes made
// through this process are published by the repository after commit.
// Writes made by other processes are detected by watching the database
// files and confirmed with PRAGMA data_version.
//
// Each subscriber channel holds at most one pending event. A burst of
// commits collapses into one notification, which is enough because
// consumers re-read the whole snapshot.
type ChangeFeed struct {
	db          *sql.DB
	dbPath      string
	settleDelay time.Duration

	mu     sync.Mutex
	subs   map[int]chan entity.RuleSetChange
	nextID int
}

var _ port.RuleSetWatcher = (*ChangeFeed)(nil)

// NewChangeFeed creates a feed for the database at dbPath. An empty dbPath
// disables external change detection.
func NewChangeFeed(db *sql.DB, dbPath string) *ChangeFeed {
	return &ChangeFeed{
		db:          db,
		dbPath:      dbPath,
		settleDelay: DefaultSettleDelay,
		subs:        make(map[int]chan entity.RuleSetChange),
	}
}

// SetSettleDelay overrides DefaultSettleDelay. Call before Watch.
func (f *ChangeFeed) SetSettleDelay(d time.Duration) {
	f.settleDelay = d
}

// Publish notifies every subscriber of a local commit.
func (f *ChangeFeed) Publish(keys ...entity.RuleSetKey) {
	f.broadcast(entity.RuleSetChange{Keys: keys, Source: entity.ChangeSourceLocal})
}

// Watch subscribes to changes until ctx is done, then closes the channel.
func (f *ChangeFeed) Watch(ctx context.Context) (<-chan entity.RuleSetChange, error) {
	ch := make(chan entity.RuleSetChange, 1)

	var watcher *fsnotify.Watcher
	var version int64
	if f.dbPath != "" {
		var err error
		if version, err = f.dataVersion(ctx); err != nil {
			return nil, err
		}
		if watcher, err = fsnotify.NewWatcher(); err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		if err := watcher.Add(filepath.Dir(f.dbPath)); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(f.dbPath), err)
		}
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	f.mu.Unlock()

	go func() {
		defer f.unsubscribe(id)
		if watcher == nil {
			<-ctx.Done()
			return
		}
		defer watcher.Close()
		f.watchFiles(ctx, watcher, version)
	}()

	return ch, nil
}

func (f *ChangeFeed) watchFiles(ctx context.Context, watcher *fsnotify.Watcher, version int64) {
	log := logging.FromContext(ctx)

	watched := map[string]bool{
		filepath.Clean(f.dbPath):          true,
		filepath.Clean(f.dbPath + "-wal"): true,
	}

	settle := time.NewTimer(f.settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watched[filepath.Clean(event.Name)] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settle.Reset(f.settleDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("database file watcher error")
		case <-settle.C:
			current, err := f.dataVersion(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("failed to read data_version")
				continue
			}
			if current == version {
				continue
			}
			version = current
			log.Debug().Int64("data_version", current).Msg("external rules change detected")
			f.broadcast(entity.RuleSetChange{Keys: entity.AllRuleSetKeys(), Source: entity.ChangeSourceExternal})
		}
	}
}

// dataVersion changes whenever another connection commits to the database.
func (f *ChangeFeed) dataVersion(ctx context.Context) (int64, error) {
	var v int64
	if err := f.db.QueryRowContext(ctx, "PRAGMA data_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read data_version: %w", err)
	}
	return v, nil
}

func (f *ChangeFeed) broadcast(change entity.RuleSetChange) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- change:
		default:
			// An event is already pending; the subscriber will re-read everything.
		}
	}
}

func (f *ChangeFeed) unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ch, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(ch)
	}
}
