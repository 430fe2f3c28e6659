package main

import "github.com/photomat/photomat/cmd/photomat/cmd"

func main() {
	cmd.Execute()
}
