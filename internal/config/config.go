package config

// Config holds every tunable of the game and its shells.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Scoring ScoringConfig `yaml:"scoring"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// GameConfig defines the board and its rules.
type GameConfig struct {
	Mode       string `yaml:"mode"`         // "blocks" or "snake"
	Size       int    `yaml:"size"`         // Side of the square grid
	Gravity    string `yaml:"gravity"`      // "bottom", "isolate", or empty for the mode default
	Catalog    string `yaml:"catalog"`      // "classic" or "extended"
	QueueSize  int    `yaml:"queue_size"`   // Figures offered at once
	MinWordLen int    `yaml:"min_word_len"` // Shortest word that counts
	Jokers     int    `yaml:"jokers"`       // Free letters per game
	Cascade    bool   `yaml:"cascade"`      // Rescan after gravity until nothing is found
}

// LexiconConfig defines where words come from and which ones are kept.
type LexiconConfig struct {
	Path   string `yaml:"path"` // Newline-delimited word list; empty uses the built-in set
	MinLen int    `yaml:"min_len"`
	MaxLen int    `yaml:"max_len"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	Placement       int    `yaml:"placement"`         // Points per placed figure
	LineLetter      int    `yaml:"line_letter"`       // Points per letter of a line word
	HardLetterBonus int    `yaml:"hard_letter_bonus"` // Extra points per hard letter in a traced word
	HardLetters     string `yaml:"hard_letters"`
}

// StorageConfig defines score persistence.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig defines listen addresses of the network shells.
type ServerConfig struct {
	SSHAddr  string `yaml:"ssh_addr"`
	HTTPAddr string `yaml:"http_addr"`
}
