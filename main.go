package main

import "github.com/KaramelBytes/vizadvisor-cli/cmd"

func main() {
	cmd.Execute()
}
