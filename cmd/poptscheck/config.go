// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configName = "poptscheck.toml"

// Config is the project configuration read from poptscheck.toml.
type Config struct {
	// Schemas are glob patterns relative to the config file.
	Schemas []string `toml:"schemas,omitempty"`
	Color   string   `toml:"color,omitempty"`
	Jobs    int      `toml:"jobs,omitempty"`
}

type configLocation struct {
	Path   string
	Dir    string
	Config *Config
}

func loadConfigFromCwd() (*configLocation, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return loadConfigFromDir(cwd)
}

// loadConfigFromDir returns the nearest config at or above startDir, or nil
// when there is none.
func loadConfigFromDir(startDir string) (*configLocation, error) {
	path, err := findConfigPath(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse %s: unknown key %q", path, undecoded[0].String())
	}
	return &configLocation{Path: path, Dir: filepath.Dir(path), Config: &cfg}, nil
}

func findConfigPath(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		path := filepath.Join(dir, configName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// schemaPaths expands the configured patterns. A pattern that matches
// nothing is an error so typos do not pass silently.
func (l *configLocation) schemaPaths() ([]string, error) {
	var paths []string
	for _, pattern := range l.Config.Schemas {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(l.Dir, pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: schemas: %w", l.Path, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: schemas: %q matches no files", l.Path, pattern)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
