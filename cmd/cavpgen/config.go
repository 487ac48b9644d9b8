// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/decred/cavpgen/errors"
	"github.com/decred/cavpgen/internal/cfgutil"
	"github.com/decred/cavpgen/internal/loggers"
	"github.com/decred/cavpgen/vectorgen"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel = "info"
	defaultLogSize  = 10 * 1024 // KiB
)

type config struct {
	// General application behavior
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}, or SUBSYS=level pairs separated by commas"`
	LogFile     string `long:"logfile" description:"Also write log output to this file"`

	// Generation options
	Algorithm *cfgutil.AlgorithmFlag `long:"alg" description:"Hash algorithm {sha256, sha384, sha512}"`
	Name      string                 `long:"name" description:"Test name, used as the C identifier of the vector array"`
	Response  string                 `long:"rsp" description:"Path to response file"`
	Out       string                 `long:"out" description:"Output to file (default stdout)"`
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in cavpgen functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.
//
// A *flags.Error with type flags.ErrHelp is returned when help was requested.
// When the version flag is set the remaining options are not validated.
func loadConfig(args []string) (*config, error) {
	const op errors.Op = "loadConfig"

	cfg := config{
		DebugLevel: defaultLogLevel,
		Algorithm:  cfgutil.NewAlgorithmFlag(cfgutil.SHA256),
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preCfg.Algorithm = cfgutil.NewAlgorithmFlag(cfgutil.SHA256)
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if preCfg.ShowVersion {
		return &preCfg, nil
	}

	// Load additional config from file.
	parser := flags.NewParser(&cfg, flags.Default)
	if preCfg.ConfigFile != "" {
		configFilePath := cfgutil.CleanAndExpandPath(preCfg.ConfigFile)
		err = flags.NewIniParser(parser).ParseFile(configFilePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			if os.IsNotExist(err) {
				return nil, errors.E(op, errors.NotExist, err)
			}
			return nil, errors.E(op, errors.Invalid, err)
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(remainingArgs) > 0 {
		err := errors.E(op, errors.Invalid, errors.Errorf("unexpected arguments %v",
			remainingArgs))
		fmt.Fprintln(os.Stderr, err)
		return nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", loggers.SupportedSubsystems())
		os.Exit(0)
	}

	if err := validateConfig(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Use -h to show usage")
		return nil, err
	}

	// Initialize logging at the default logging level, then apply the
	// requested level(s).
	loggers.SetLogLevels(defaultLogLevel)
	if cfg.LogFile != "" {
		if err := loggers.InitLogRotator(cfg.LogFile, defaultLogSize); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil, err
		}
	}
	if err := loggers.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	return &cfg, nil
}

// validateConfig checks the required options and normalizes paths.
func validateConfig(cfg *config) error {
	const op errors.Op = "validateConfig"

	if !cfg.Algorithm.IsSet() {
		return errors.E(op, errors.Invalid, "--alg is required, one of "+
			strings.Join(cfgutil.AlgorithmNames(), ", "))
	}
	if cfg.Name == "" {
		return errors.E(op, errors.Invalid, "--name is required")
	}
	if err := vectorgen.ValidName(cfg.Name); err != nil {
		return errors.E(op, err)
	}
	if cfg.Response == "" {
		return errors.E(op, errors.Invalid, "--rsp is required")
	}

	cfg.Response = cfgutil.CleanAndExpandPath(cfg.Response)
	exists, err := cfgutil.FileExists(cfg.Response)
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	if !exists {
		return errors.E(op, errors.NotExist,
			errors.Errorf("response file %s not found", cfg.Response))
	}
	if cfg.Out != "" {
		cfg.Out = cfgutil.CleanAndExpandPath(cfg.Out)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = cfgutil.CleanAndExpandPath(cfg.LogFile)
	}
	return nil
}
