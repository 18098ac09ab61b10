package main

import "github.com/KaramelBytes/vaxviz-cli/cmd"

func main() {
	cmd.Execute()
}
