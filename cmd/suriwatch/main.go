package main

import "github.com/livp123/suriwatch/cmd/suriwatch/commands"

func main() {
	commands.Execute()
}
