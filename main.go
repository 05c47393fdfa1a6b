// Command intcode executes Intcode programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/slices"
)

func main() {
	log.SetPrefix("intcode: ")
	log.SetFlags(0)

	var (
		inputs  valuesFlag
		patches patchFlag
		peeks   addrsFlag

		interactiveFlag = flag.Bool("interactive", false, "read missing inputs from the terminal")
		traceFlag       = flag.Bool("trace", false, "print every instruction to stderr before executing it")
		devFlag         = flag.Bool("dev", false, "enable developer mode (re-run the program when its file changes)")
		debugFlag       = flag.Bool("debug", false, "enable debugger (implies -dev)")

		mazeFlag  = flag.Bool("maze", false, "explore the maze around the repair droid the program controls")
		driveFlag = flag.Bool("drive", false, "steer the repair droid from the keyboard")
		pngFlag   = flag.String("png", "", "with -maze, write the explored maze to `file`")
		scaleFlag = flag.Int("scale", 8, "with -maze, pixels per maze location")
		guiFlag   = flag.Bool("gui", false, "with -maze, show exploration in a window")
		delayFlag = flag.Duration("delay", 5*time.Millisecond, "with -gui, pause after every droid move")

		searchFlag = flag.Int64("search", 0, "find the noun and verb (addresses 1 and 2) that leave `value` at address 0")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)
	flag.Var(&inputs, "in", "comma separated `values` for the input queue")
	flag.Var(&patches, "set", "write `addr=value` to memory before running (repeatable)")
	flag.Var(&peeks, "peek", "print memory at `addr` after running (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-in values] [-set addr=value] [-peek addr] <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <-dev | -debug> <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <-maze [-png file] [-gui] | -drive> <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -search value <program>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	file := flag.Arg(0)

	var set []string
	flag.Visit(func(f *flag.Flag) { set = append(set, f.Name) })
	mode := "run"
	switch {
	case *devFlag || *debugFlag:
		mode = "dev"
	case *mazeFlag:
		mode = "maze"
	case *driveFlag:
		mode = "drive"
	case slices.Contains(set, "search"):
		mode = "search"
	}
	if err := checkFlags(mode, set); err != nil {
		log.Print(err)
		flag.Usage()
	}

	if mode == "dev" {
		if err := devMode(*debugFlag, file, inputs, patches); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	var err error
	switch mode {
	case "maze":
		err = exploreMaze(file, mazeConfig{
			patches: patches,
			png:     *pngFlag,
			scale:   *scaleFlag,
			gui:     *guiFlag,
			delay:   *delayFlag,
		})
	case "drive":
		err = drive(file, patches)
	case "search":
		err = searchNounVerb(file, patches, *searchFlag)
	default:
		err = run(file, runConfig{
			inputs:      inputs,
			patches:     patches,
			peeks:       peeks,
			interactive: *interactiveFlag,
			trace:       *traceFlag,
		})
	}

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}
