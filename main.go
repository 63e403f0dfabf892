package main

import "github.com/atomicstack/tmux-overview/internal/cli"

func main() {
	cli.Execute()
}
