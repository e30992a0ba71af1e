package main

import "github.com/callmegreg/gh-advanced-security-sync/cmd"

func main() {
	cmd.Execute()
}
