package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/alpsviz/pkg/errors"
	"github.com/matzehuels/alpsviz/pkg/pipeline"
)

// configFileName is looked up next to the profile when --config is not set.
const configFileName = "alpsviz.toml"

// fileConfig is the content of an alpsviz.toml file.
//
//	label = "title"
//	color = "blue"
//	formats = ["dot", "svg"]
//	doc_ext = "html"
//	output = "build/diagram"
//
//	[tags]
//	and = ["collection"]
//	or = []
//
//	[serve]
//	addr = "localhost:8080"
//	redis = "redis://localhost:6379/0"
type fileConfig struct {
	Label   string   `toml:"label"`
	Color   string   `toml:"color"`
	Formats []string `toml:"formats"`
	DocExt  string   `toml:"doc_ext"`
	Output  string   `toml:"output"`

	Tags struct {
		And []string `toml:"and"`
		Or  []string `toml:"or"`
	} `toml:"tags"`

	Serve struct {
		Addr  string `toml:"addr"`
		Redis string `toml:"redis"`
	} `toml:"serve"`

	// path is the file the config was read from, empty when there was none.
	path string
}

// loadConfig reads the config file named by explicit, or alpsviz.toml in the
// directory of input. A missing default file yields an empty config; a
// missing explicit file is an error.
func loadConfig(explicit, input string) (*fileConfig, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(filepath.Dir(input), configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit == "" && os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotReadable, err, "read config")
	}

	var cfg fileConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.path = path
	return &cfg, nil
}

// apply fills every option whose flag was not set on the command line from
// the config file. Options left empty get pipeline defaults later.
func (cfg *fileConfig) apply(opts *pipeline.Options, changed func(flag string) bool) {
	if cfg.Label != "" && !changed("label") {
		opts.Label = cfg.Label
	}
	if cfg.Color != "" && !changed("color") {
		opts.Color = cfg.Color
	}
	if len(cfg.Formats) > 0 && !changed("format") {
		opts.Formats = append([]string(nil), cfg.Formats...)
	}
	if cfg.DocExt != "" && !changed("doc-ext") {
		opts.DocExt = cfg.DocExt
	}
	if len(cfg.Tags.And) > 0 && !changed("and-tag") {
		opts.AndTags = append([]string(nil), cfg.Tags.And...)
	}
	if len(cfg.Tags.Or) > 0 && !changed("or-tag") {
		opts.OrTags = append([]string(nil), cfg.Tags.Or...)
	}
}

// output returns the output path, preferring the flag value. A relative
// path in the config file is relative to the file.
func (cfg *fileConfig) output(flag string, changed func(string) bool) string {
	if changed("output") || cfg.Output == "" {
		return flag
	}
	if filepath.IsAbs(cfg.Output) || cfg.path == "" {
		return cfg.Output
	}
	return filepath.Join(filepath.Dir(cfg.path), cfg.Output)
}

// serveAddr returns the listen address, preferring the flag value.
func (cfg *fileConfig) serveAddr(flag string, changed func(string) bool) string {
	if changed("addr") || cfg.Serve.Addr == "" {
		return flag
	}
	return cfg.Serve.Addr
}

// serveRedis returns the Redis URL, preferring the flag value.
func (cfg *fileConfig) serveRedis(flag string, changed func(string) bool) string {
	if changed("redis") || cfg.Serve.Redis == "" {
		return flag
	}
	return cfg.Serve.Redis
}
