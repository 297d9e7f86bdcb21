package main

import "github.com/idun-project/idun-defaults/cmd"

func main() {
	cmd.Execute()
}
