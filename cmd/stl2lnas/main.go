// stl2lnas converts binary STL surfaces into an LNAS (Lagrangian Nassu) file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "convert", "c":
		err = cmdConvert(ctx, args)
	case "folder", "f":
		err = cmdFolder(ctx, args)
	case "info", "i":
		err = cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stl2lnas - converts STL files to LNAS (Lagrangian Nassu format)

Usage:
  stl2lnas <command> [options]

Commands:
  convert -c <config.yaml> [-out DIR] [-name NAME] [-overwrite]
                                     Convert the surfaces listed in a config
  folder -o <out.lnas> [-d DIR]... [-f FILE.stl]... [-size N -axis x|y|z]
                                     Convert every STL in folders and files
  info <file.lnas>                   Show LNAS contents

Examples:
  stl2lnas convert -c examples/convert_cube.yaml
  stl2lnas folder -d ./stls -f extra/terrain.stl -o out/model.lnas --overwrite
  stl2lnas info out/model.lnas`)
}
