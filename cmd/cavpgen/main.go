// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command cavpgen converts NIST CAVP hash response files into C test vector
// includes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/decred/cavpgen/errors"
	"github.com/decred/cavpgen/internal/loggers"
	"github.com/decred/cavpgen/rsp"
	"github.com/decred/cavpgen/vectorgen"
	"github.com/decred/cavpgen/version"
	flags "github.com/jessevdk/go-flags"
)

func init() {
	errors.Separator = ":: "
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if cfg.ShowVersion {
		fmt.Printf("%s version %s (Go version %s %s/%s)\n",
			filepath.Base(os.Args[0]), version.String(),
			runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	ctx := withShutdownCancel(context.Background())
	go shutdownListener()

	err = run(ctx, cfg)
	if err != nil {
		log.Errorf("%v", err)
		loggers.CloseLogRotator()
		os.Exit(1)
	}
	loggers.CloseLogRotator()
}

// run parses the configured response file and writes the generated include.
// The response file is parsed before the output is opened so malformed input
// never creates an output file.  Output is abandoned if ctx is cancelled
// before it is complete.
func run(ctx context.Context, cfg *config) error {
	const op errors.Op = "run"

	alg := cfg.Algorithm.Algorithm()
	log.Infof("Generating %s test vectors %q from %s", alg, cfg.Name, cfg.Response)

	cases, err := rsp.ParseFile(cfg.Response)
	if err != nil {
		return errors.E(op, err)
	}
	log.Debugf("Parsed %d test cases", len(cases))
	if err := ctx.Err(); err != nil {
		return errors.E(op, err)
	}

	gencfg := vectorgen.Config{
		Algorithm: alg.String(),
		Name:      cfg.Name,
		Source:    filepath.Base(cfg.Response),
	}
	err = writeOutput(ctx, cfg.Out, func(w io.Writer) error {
		return vectorgen.Generate(w, gencfg, cases)
	})
	if err != nil {
		return errors.E(op, err)
	}

	if cfg.Out != "" {
		log.Infof("Wrote %s", cfg.Out)
	}
	return nil
}
