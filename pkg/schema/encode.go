// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Encode writes f to w in the given format. Decoding the output yields an
// equivalent File, except that HCL always carries option IDs.
func (f *File) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatHCL:
		_, err := f.hcl().WriteTo(w)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func (f *File) hcl() *hclwrite.File {
	hf := hclwrite.NewEmptyFile()
	body := hf.Body()
	body.SetAttributeValue("program", cty.StringVal(f.Program))

	for _, o := range f.Options {
		body.AppendNewline()
		b := body.AppendNewBlock("option", []string{o.Key()}).Body()
		b.SetAttributeValue("names", stringList(o.Names))
		setString(b, "type", o.Type)
		setString(b, "default", o.Default)
		setString(b, "description", o.Description)
		if o.Many {
			b.SetAttributeValue("many", cty.True)
		}
		if o.Flag {
			b.SetAttributeValue("flag", cty.True)
		}
	}

	for _, c := range f.Cases {
		body.AppendNewline()
		b := body.AppendNewBlock("case", []string{c.Name}).Body()
		setString(b, "line", c.Line)
		if c.Tokens != nil {
			b.SetAttributeValue("tokens", stringList(c.Tokens))
		}
		setBool(b, "errors", c.Errors)
		setBool(b, "duplicates", c.Duplicates)
		setBool(b, "consistent", c.Consistent)
		if c.Tail != nil {
			b.SetAttributeValue("tail", stringList(*c.Tail))
		}
		if len(c.Values) > 0 {
			values := make(map[string]cty.Value, len(c.Values))
			for k, v := range c.Values {
				values[k] = stringList(v)
			}
			b.SetAttributeValue("values", cty.MapVal(values))
		}
	}
	return hf
}

func setString(b *hclwrite.Body, name, v string) {
	if v != "" {
		b.SetAttributeValue(name, cty.StringVal(v))
	}
}

func setBool(b *hclwrite.Body, name string, v *bool) {
	if v != nil {
		b.SetAttributeValue(name, cty.BoolVal(*v))
	}
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
