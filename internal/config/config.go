package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"reddit-psych-pipeline/internal/model"
)

const envFile = ".env"

// Config is the full application configuration, loaded from an optional
// YAML file with documented defaults for every field. Reddit credentials
// are never part of the file; they come from the environment (see Creds).
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Scraper ScraperConfig `yaml:"scraper"`
	Compile CompileConfig `yaml:"compile"`
	Render  RenderConfig  `yaml:"render"`
	Store   StoreConfig   `yaml:"store"`
	Server  ServerConfig  `yaml:"server"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ScraperConfig configures the collector.
type ScraperConfig struct {
	Subreddits   []string `yaml:"subreddits"`
	PostLimit    int      `yaml:"post_limit"`
	RequestDelay string   `yaml:"request_delay"`
	UserAgent    string   `yaml:"user_agent"`
	OutputDir    string   `yaml:"output_dir"`
}

// CompileConfig configures the clean/compile pipeline.
type CompileConfig struct {
	InputDir      string `yaml:"input_dir"`
	OutputPath    string `yaml:"output_path"`
	MinBodyLength int    `yaml:"min_body_length"`
	KeepLinkOnly  bool   `yaml:"keep_link_only"`
	Dedup         bool   `yaml:"dedup"`
}

// RenderConfig configures the PDF renderer.
type RenderConfig struct {
	DatasetPath string `yaml:"dataset_path"`
	OutputPath  string `yaml:"output_path"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Creds holds Reddit API credentials loaded from the environment.
type Creds struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// Default returns the documented defaults, matching the system the
// captures come from: psychology and mental-health subreddits.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Scraper: ScraperConfig{
			Subreddits: []string{
				"psychology", "askpsychology", "AcademicPsychology",
				"socialpsychology", "cogsci", "socialengineering",
				"selfimprovement", "IWantToLearn",
				"mentalhealth", "talktherapy", "relationships", "offmychest",
			},
			PostLimit:    1000,
			RequestDelay: "2s",
			UserAgent:    "psych_ai_scraper_v1",
			OutputDir:    "output",
		},
		Compile: CompileConfig{
			InputDir:      "output",
			OutputPath:    "compiled_clean.jsonl",
			MinBodyLength: 5,
			KeepLinkOnly:  false,
			Dedup:         true,
		},
		Render: RenderConfig{
			DatasetPath: "compiled_clean.jsonl",
			OutputPath:  "compiled_posts.pdf",
		},
		Store:  StoreConfig{Path: "pipeline.db"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads configuration from the given YAML file, merged over defaults.
// A missing file is not an error; it just means defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadCreds loads Reddit API credentials from a .env file (if present)
// and the process environment. Missing credentials are reported by the
// caller, not here, so read-only commands never require them.
func LoadCreds() Creds {
	godotenv.Load(filepath.Join(".", envFile))

	return Creds{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		UserAgent:    os.Getenv("USER_AGENT"),
	}
}

// CompileOptions converts the compile section to the options value the
// Compiler is constructed with.
func (c Config) CompileOptions() model.CompileOptions {
	return model.CompileOptions{
		InputDir:      c.Compile.InputDir,
		OutputPath:    c.Compile.OutputPath,
		MinBodyLength: c.Compile.MinBodyLength,
		KeepLinkOnly:  c.Compile.KeepLinkOnly,
		Dedup:         c.Compile.Dedup,
	}
}
