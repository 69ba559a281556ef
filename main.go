// SPDX-License-Identifier: MPL-2.0

package main

import cmd "jarpack-cli/cmd/jarpack"

func main() {
	cmd.Execute()
}
