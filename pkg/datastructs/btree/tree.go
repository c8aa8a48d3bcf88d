package btree

import (
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-bptree/pkg/metrics"
	"github.com/huynhanx03/go-bptree/pkg/settings"
)

// Tree is a concurrent fixed-capacity B+ tree. All methods are safe for
// concurrent use except Reset.
type Tree struct {
	cfg     settings.BTree
	arena   *Arena
	root    atomic.Uint32
	log     *zap.Logger
	metrics *metrics.Tree
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tree) {
		if log != nil {
			t.log = log
		}
	}
}

// WithMetrics sets the prometheus collectors. A nil value disables recording.
func WithMetrics(m *metrics.Tree) Option {
	return func(t *Tree) {
		t.metrics = m
	}
}

// New returns an empty tree with the geometry of cfg.
func New(cfg *settings.BTree, opts ...Option) (*Tree, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil config")
	}
	if err := settings.Validate(cfg); err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	if int64(cfg.NodesPerLevel)*int64(cfg.MaxLevels) >= math.MaxUint32 {
		return nil, errors.Wrapf(ErrInvalidArgument, "arena of %d x %d slots is not addressable",
			cfg.NodesPerLevel, cfg.MaxLevels)
	}

	t := &Tree{
		cfg:   *cfg,
		arena: newArena(cfg),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.root.Store(0)
	t.metrics.SetRootLevel(0)
	return t, nil
}

// Reset empties the tree. The caller must guarantee no other operation is running.
func (t *Tree) Reset() {
	t.arena.Reset()
	t.root.Store(0)
	t.metrics.SetRootLevel(0)
}

// Root returns the current root address.
func (t *Tree) Root() Addr { return Addr(t.root.Load()) }

// Height returns the number of levels from the root down to the leaves.
func (t *Tree) Height() int { return t.arena.Level(t.Root()) + 1 }

// Arena exposes the node storage for inspection.
func (t *Tree) Arena() *Arena { return t.arena }

// Config returns the tree geometry.
func (t *Tree) Config() settings.BTree { return t.cfg }

func (t *Tree) newLineage() Lineage {
	l := make(Lineage, t.cfg.MaxLevels)
	for i := range l {
		l[i] = InvalidAddr
	}
	return l
}
