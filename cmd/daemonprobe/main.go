package main

import "github.com/mvp-joe/daemonprobe/internal/cli"

func main() {
	cli.Execute()
}
