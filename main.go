package main

import "github.com/inkwellhq/inkwell/cmd"

func main() {
	cmd.Execute()
}
