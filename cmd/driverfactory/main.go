package main

import "github.com/devicelab-dev/driver-factory/pkg/cli"

func main() {
	cli.Execute()
}
