package main

import "github.com/pfrederiksen/tournament-monitor/internal/cli"

func main() {
	cli.Execute()
}
