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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/db47h/zforth/host"
	"github.com/db47h/zforth/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func colorMode(mode string, f *os.File) (bool, error) {
	switch mode {
	case "auto":
		return term.IsTerminal(int(f.Fd())), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, errors.Errorf("invalid color mode %q (want auto, on or off)", mode)
	}
}

func newRootCmd() *cobra.Command {
	var flags flagValues
	cmd := &cobra.Command{
		Use:           "zforth [flags] [src ...]",
		Short:         "zForth interpreter",
		Long:          "zforth includes each src file in order, then reads lines from stdin until EOF.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.register(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flags.config, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		flags.apply(cmd, &cfg)
		return run(cfg, args, os.Stdin, os.Stdout, os.Stderr)
	}
	return cmd
}

func run(cfg config, args []string, stdin io.Reader, stdout, stderr *os.File) (err error) {
	useColor, err := colorMode(cfg.Color, stderr)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(stdout)
	var i *vm.Instance

	// flush output and dump the VM on any exit path, including quit.
	finish := func() {
		out.Flush()
		if cfg.Dump && i != nil {
			if e := dumpVM(i, stdout); e != nil && err == nil {
				err = e
			}
		}
	}
	defer finish()

	i, h, err := host.NewVM(cfg.Trace, []vm.Option{vm.Size(cfg.Size)},
		host.Output(out),
		host.Diag(stderr),
		host.Color(useColor),
		host.SaveFile(cfg.SaveFile),
		host.MaxIncludeDepth(cfg.IncludeDepth),
		host.Exit(func(code int) {
			finish()
			os.Exit(code)
		}))
	if err != nil {
		return err
	}

	// load dictionary from disk if requested, otherwise bootstrap it.
	loaded := false
	if cfg.Load != "" {
		_, e := h.Load(cfg.Load)
		loaded = e == nil
	}
	if !loaded {
		if err = i.Bootstrap(); err != nil {
			return err
		}
		if err = h.Prelude(); err != nil {
			return err
		}
	}

	for _, fileName := range args {
		// errors are reported by Include, keep going
		h.Include(fileName)
	}
	return h.Interact(stdin)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
}
