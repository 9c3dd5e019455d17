// SPDX-License-Identifier: MPL-2.0

// relaybot is a dynamically extensible chat relay bot. See cmd/relaybot
// for the CLI surface.
package main

import cmd "relaybot/cmd/relaybot"

func main() {
	cmd.Execute()
}
