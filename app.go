package main

import "github.com/masmgr/rankcurve/cmd"

func main() {
	cmd.Run()
}
