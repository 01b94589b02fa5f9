package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/fs"
	"github.com/fwojciec/relic/restore"
	"github.com/fwojciec/relic/timeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Users    relic.UserService
	Restorer *restore.Restorer

	// Writer is the emitter behind Restorer, kept for its write counts.
	Writer *fs.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `env:"RELIC_CONFIG" help:"TOML config file with command defaults"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Restore RestoreCmd `cmd:"" help:"Rebuild corpus records from captured thread pages"`
	Dedupe  DedupeCmd  `cmd:"" help:"Keep the latest snapshot for each path"`
	Cache   CacheCmd   `cmd:"" help:"Build the search-cache index from search API responses"`
	Users   UsersCmd   `cmd:"" help:"Manage the user directory"`
}

// RestoreCmd is the "restore" subcommand.
type RestoreCmd struct {
	Captures          string `arg:"" help:"Directory of captured thread pages (<id>.html or <id>/index.html)"`
	Out               string `short:"o" help:"Corpus root directory (default: current directory)"`
	Users             string `short:"u" help:"Users file (JSON); the database directory is used when unset"`
	Concurrency       int    `short:"c" help:"Captures processed at once (default: 4)"`
	AdjacentNeighbors bool   `help:"Interpolate missing dates between the nearest known neighbours"`
}

func (c *RestoreCmd) applyConfig(cfg RestoreConfig) {
	if c.Out == "" {
		c.Out = cfg.Output
	}
	if c.Out == "" {
		c.Out = "."
	}
	if c.Users == "" {
		c.Users = cfg.UsersFile
	}
	if c.Concurrency <= 0 {
		c.Concurrency = cfg.Concurrency
	}
	if !c.AdjacentNeighbors {
		p, _ := timeline.ParseNeighborPolicy(cfg.Neighbors)
		c.AdjacentNeighbors = p == timeline.AdjacentNeighbors
	}
}

func (c *RestoreCmd) policy() timeline.NeighborPolicy {
	if c.AdjacentNeighbors {
		return timeline.AdjacentNeighbors
	}
	return timeline.OffsetNeighbors
}

// DefaultArchivePrefix is prepended to original URLs read from CDX listings.
const DefaultArchivePrefix = "https://web.archive.org/web/2019/"

// DedupeCmd is the "dedupe" subcommand.
type DedupeCmd struct {
	Input  string `arg:"" help:"Snapshot list: JSON array of [url, path] or [url, path, timestamp]"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	CDX    bool   `name:"cdx" help:"Read a web-archive CDX JSON listing instead"`
	Prefix string `help:"Capture URL prefix for CDX listings"`
}

func (c *DedupeCmd) applyConfig(cfg DedupeConfig) {
	if c.Prefix == "" {
		c.Prefix = cfg.Prefix
	}
	if c.Prefix == "" {
		c.Prefix = DefaultArchivePrefix
	}
}

// CacheCmd is the "cache" subcommand.
type CacheCmd struct {
	Dir    string `arg:"" help:"Directory of search API responses"`
	Prefix string `default:"cse-" help:"Response file name prefix"`
	Output string `short:"o" help:"Output file (default: stdout)"`
}

// UsersCmd groups the user directory subcommands.
type UsersCmd struct {
	Import UsersImportCmd `cmd:"" help:"Import a users file into the database"`
	List   UsersListCmd   `cmd:"" help:"List users in the database"`
}

// UsersImportCmd is the "users import" subcommand.
type UsersImportCmd struct {
	File string `arg:"" help:"Users file: JSON array of {user_id, user_name, user_intro, user_avatar}"`
}

// UsersListCmd is the "users list" subcommand.
type UsersListCmd struct {
	Name   string `help:"Only show the user with this name"`
	Limit  int    `default:"0" help:"Maximum number of users to show"`
	Offset int    `default:"0" help:"Number of users to skip"`
}
