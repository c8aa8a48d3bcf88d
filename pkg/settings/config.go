package settings

type Config struct {
	BTree   BTree   `mapstructure:"btree" yaml:"btree"`
	Logger  Logger  `mapstructure:"logger" yaml:"logger"`
	Metrics Metrics `mapstructure:"metrics" yaml:"metrics"`
}

// BTree is the configuration for a fixed-capacity B+ tree.
// The arena holds NodesPerLevel * MaxLevels nodes and never grows.
type BTree struct {
	Order         int `mapstructure:"order" yaml:"order" validate:"gte=3,lte=64"`
	NodesPerLevel int `mapstructure:"nodes_per_level" yaml:"nodes_per_level" validate:"gte=1"`
	MaxLevels     int `mapstructure:"max_levels" yaml:"max_levels" validate:"gte=1,lte=32"`
}

// MemSize is the number of node slots in the arena.
func (b BTree) MemSize() int {
	return b.NodesPerLevel * b.MaxLevels
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Metrics is the configuration for prometheus collectors
type Metrics struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace" validate:"required_if=Enabled true"`
}
