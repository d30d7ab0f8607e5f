// Package main is the entry point for the testgrade CLI.
package main

import "testgrade.dev/pkg/testgrade/cmd"

func main() {
	cmd.Execute()
}
