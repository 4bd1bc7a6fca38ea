// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/hanapph/hanap/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
