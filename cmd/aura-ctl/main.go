package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/spf13/pflag"

	"aura/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", ipc.DefaultSocket, "Control socket path")
	cli.Parse()

	args := cli.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cmd := args[0]
	arg := ""

	switch cmd {
	case "stop":
	case "say":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		arg = strings.Join(args[1:], " ")
	case "audio":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		arg = args[1]
	default:
		usage()
		os.Exit(2)
	}

	if err := ipc.Send(*socket, cmd, arg); err != nil {
		fmt.Println("aura not running:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: aura-ctl [--socket path] stop | say <text> | audio <file>")
}
