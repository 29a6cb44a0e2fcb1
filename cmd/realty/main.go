package main

import "github.com/isaacphi/realty/internal/ui/cli"

func main() {
	cli.Execute()
}
