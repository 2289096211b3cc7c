package main

import "github.com/repos-devops/asgard/cmd"

func main() {
	cmd.Execute()
}
