// This file is part of zforth - https://github.com/db47h/zforth
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/db47h/zforth/host"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "zforth.toml"

type config struct {
	Size         int    `toml:"size"`
	Trace        bool   `toml:"trace"`
	Load         string `toml:"load"`
	SaveFile     string `toml:"save_file"`
	Color        string `toml:"color"`
	IncludeDepth int    `toml:"include_depth"`
	Dump         bool   `toml:"dump"`
}

func defaultConfig() config {
	return config{
		Size:         16384,
		SaveFile:     host.DefaultSaveFile,
		Color:        "auto",
		IncludeDepth: host.DefaultIncludeDepth,
	}
}

// loadConfig reads a TOML configuration file on top of the defaults. A
// missing file is not an error unless required is true.
func loadConfig(fileName string, required bool) (config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(fileName, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return defaultConfig(), nil
		}
		return config{}, errors.Wrapf(err, "%s", fileName)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return config{}, errors.Errorf("%s: unknown key %q", fileName, keys[0].String())
	}
	return cfg, nil
}

type flagValues struct {
	config       string
	size         int
	trace        bool
	load         string
	saveFile     string
	color        string
	includeDepth int
	dump         bool
}

func (f *flagValues) register(cmd *cobra.Command) {
	d := defaultConfig()
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", defaultConfigFile, "read configuration from `file`")
	fl.IntVar(&f.size, "size", d.Size, "memory image size in bytes")
	fl.BoolVarP(&f.trace, "trace", "t", d.Trace, "enable tracing")
	fl.StringVarP(&f.load, "load", "l", d.Load, "load dictionary from `file`")
	fl.StringVarP(&f.saveFile, "save-file", "o", d.SaveFile, "`file` written by the save word")
	fl.StringVar(&f.color, "color", d.Color, "colorize diagnostics (auto|on|off)")
	fl.IntVar(&f.includeDepth, "include-depth", d.IncludeDepth, "maximum include nesting")
	fl.BoolVar(&f.dump, "dump", d.Dump, "dump stacks and used memory upon exit")
}

// apply overrides cfg with the flags set on the command line.
func (f *flagValues) apply(cmd *cobra.Command, cfg *config) {
	fl := cmd.Flags()
	if fl.Changed("size") {
		cfg.Size = f.size
	}
	if fl.Changed("trace") {
		cfg.Trace = f.trace
	}
	if fl.Changed("load") {
		cfg.Load = f.load
	}
	if fl.Changed("save-file") {
		cfg.SaveFile = f.saveFile
	}
	if fl.Changed("color") {
		cfg.Color = f.color
	}
	if fl.Changed("include-depth") {
		cfg.IncludeDepth = f.includeDepth
	}
	if fl.Changed("dump") {
		cfg.Dump = f.dump
	}
}
