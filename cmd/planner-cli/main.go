package main

import "planner/cmd/planner-cli/cmd"

func main() {
	cmd.Execute()
}
