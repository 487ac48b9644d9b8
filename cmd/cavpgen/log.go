// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/decred/cavpgen/internal/loggers"
	"github.com/decred/cavpgen/rsp"
	"github.com/decred/cavpgen/vectorgen"
)

var log = loggers.MainLog

// Initialize package-global logger variables.
func init() {
	rsp.UseLogger(loggers.ParserLog)
	vectorgen.UseLogger(loggers.GenLog)
}
