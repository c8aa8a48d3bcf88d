package settings

const (
	DefaultOrder         = 4
	DefaultNodesPerLevel = 10
	DefaultMaxLevels     = 4
	DefaultLogLevel      = "info"
	DefaultNamespace     = "bptree"
)

// DefaultBTree returns the tree geometry used when none is configured.
func DefaultBTree() BTree {
	return BTree{
		Order:         DefaultOrder,
		NodesPerLevel: DefaultNodesPerLevel,
		MaxLevels:     DefaultMaxLevels,
	}
}

// Default returns a complete configuration with every default applied.
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	d := DefaultBTree()
	if c.BTree.Order == 0 {
		c.BTree.Order = d.Order
	}
	if c.BTree.NodesPerLevel == 0 {
		c.BTree.NodesPerLevel = d.NodesPerLevel
	}
	if c.BTree.MaxLevels == 0 {
		c.BTree.MaxLevels = d.MaxLevels
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}
