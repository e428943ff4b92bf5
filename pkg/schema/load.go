// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// Format is a schema file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

const compressedExt = ".zst"

// ErrUnknownFormat is returned for file names whose extension is not a
// known schema format.
var ErrUnknownFormat = errors.New("unknown schema format")

// FormatOf returns the format for a file name, ignoring a trailing ".zst".
func FormatOf(name string) (Format, error) {
	name = strings.TrimSuffix(name, compressedExt)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(name))
}

// Load reads and decodes the schema file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Decode decodes data in the format implied by name and validates the
// result.
func Decode(name string, data []byte) (*File, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(name, compressedExt) {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
		}
	}

	var f *File
	switch format {
	case FormatTOML:
		f, err = decodeTOML(data)
	case FormatYAML:
		f, err = decodeYAML(data)
	case FormatHCL:
		f, err = decodeHCL(name, data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}
	return f, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// Compress returns data zstd-compressed, the form Decode accepts for
// names ending in ".zst".
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decodeTOML(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

func decodeYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	return &f, nil
}

// hclSchema mirrors File with option IDs and case names as block labels.
type hclSchema struct {
	Program string       `hcl:"program"`
	Options []*hclOption `hcl:"option,block"`
	Cases   []*hclCase   `hcl:"case,block"`
}

type hclOption struct {
	ID          string   `hcl:"id,label"`
	Names       []string `hcl:"names"`
	Type        string   `hcl:"type,optional"`
	Default     string   `hcl:"default,optional"`
	Description string   `hcl:"description,optional"`
	Many        bool     `hcl:"many,optional"`
	Flag        bool     `hcl:"flag,optional"`
}

type hclCase struct {
	Name       string              `hcl:"name,label"`
	Line       string              `hcl:"line,optional"`
	Tokens     []string            `hcl:"tokens,optional"`
	Errors     *bool               `hcl:"errors,optional"`
	Duplicates *bool               `hcl:"duplicates,optional"`
	Consistent *bool               `hcl:"consistent,optional"`
	Tail       *[]string           `hcl:"tail,optional"`
	Values     map[string][]string `hcl:"values,optional"`
}

func decodeHCL(name string, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, strings.TrimSuffix(name, compressedExt))
	if diags.HasErrors() {
		return nil, diags
	}
	var hs hclSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &hs); diags.HasErrors() {
		return nil, diags
	}

	f := &File{Program: hs.Program}
	for _, o := range hs.Options {
		f.Options = append(f.Options, Option(*o))
	}
	for _, c := range hs.Cases {
		f.Cases = append(f.Cases, Case(*c))
	}
	return f, nil
}
