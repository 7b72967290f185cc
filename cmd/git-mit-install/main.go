// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"os"

	"github.com/bartekus/gitmit/cmd/internal/commands"
)

func main() {
	os.Exit(commands.Run(commands.NewInstallCmd(commands.DefaultEnv()), os.Stderr))
}
