// Package main is the entry point for the carbon4c application
package main

import "github.com/ougirez/carbon4c/cmd"

func main() {
	cmd.Execute()
}
