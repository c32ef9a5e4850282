package main

import "github.com/jjenkins/rimun/cmd"

func main() {
	cmd.Execute()
}
