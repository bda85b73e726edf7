// Command realty is the command-line front end of the brokerage record store.
package main

import "github.com/mesh-intelligence/realty/internal/cli"

func main() {
	cli.Execute()
}
