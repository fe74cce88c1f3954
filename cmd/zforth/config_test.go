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
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "zforth.toml")
	if err := os.WriteFile(name, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoadConfig(t *testing.T) {
	name := writeConfig(t, "size = 4096\ncolor = \"off\"\nsave_file = \"my.img\"\n")
	cfg, err := loadConfig(name, true)
	if err != nil {
		t.Fatal(err)
	}
	exp := defaultConfig()
	exp.Size = 4096
	exp.Color = "off"
	exp.SaveFile = "my.img"
	if cfg != exp {
		t.Errorf("expected %+v, got %+v", exp, cfg)
	}
}

func TestLoadConfig_errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	cfg, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err = loadConfig(missing, true); err == nil {
		t.Error("expected error for a missing required file")
	}
	if _, err = loadConfig(writeConfig(t, "sise = 12\n"), false); err == nil {
		t.Error("expected error for an unknown key")
	}
	if _, err = loadConfig(writeConfig(t, "size = \"big\"\n"), false); err == nil {
		t.Error("expected error for a bad value")
	}
}

func TestFlags_apply(t *testing.T) {
	var f flagValues
	cmd := &cobra.Command{}
	f.register(cmd)
	if err := cmd.Flags().Parse([]string{"--size", "1024", "-t", "-o", "x.save"}); err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig()
	cfg.Color = "on"
	f.apply(cmd, &cfg)
	exp := defaultConfig()
	exp.Size = 1024
	exp.Trace = true
	exp.SaveFile = "x.save"
	exp.Color = "on"
	if cfg != exp {
		t.Errorf("expected %+v, got %+v", exp, cfg)
	}
}

func TestColorMode(t *testing.T) {
	for _, test := range []struct {
		mode string
		exp  bool
		ok   bool
	}{
		{"on", true, true},
		{"off", false, true},
		{"blue", false, false},
	} {
		v, err := colorMode(test.mode, os.Stderr)
		if (err == nil) != test.ok || v != test.exp {
			t.Errorf("colorMode(%q): got %v, %v", test.mode, v, err)
		}
	}
}
