package port

import (
	"context"

	"github.com/bnema/veil/internal/domain/entity"
)

//go:generate mockgen -source=ruleset_watcher.go -destination=mocks/mock_ruleset_watcher.go -package=mocks

// RuleSetWatcher delivers change notifications for stored rules. The channel
// is closed when ctx is done. Bursts may be coalesced into one event.
type RuleSetWatcher interface {
	Watch(ctx context.Context) (<-chan entity.RuleSetChange, error)
}
