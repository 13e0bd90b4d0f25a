package main

import "github.com/venturely/venturely/cmd/venturely/cmd"

func main() {
	cmd.Execute()
}
