package main

import "cantabile/cmd"

func main() {
	cmd.Execute()
}
