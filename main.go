package main

import (
	"os"
	"syncwatch/cmd"
)

func main() {
	// Running the binary bare starts the daemon.
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "watch")
	}
	cmd.Execute()
}
