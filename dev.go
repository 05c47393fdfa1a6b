package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/pkg/errors"

	"github.com/sregea/advent-of-code-2019/intcode"
)

// devMode runs the program in file and runs it again whenever the file
// changes. With debug set the program runs under the debugger.
func devMode(debug bool, file string, inputs []int64, patches []patch) error {
	file = filepath.Clean(file)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(file)); err != nil {
		return err
	}

	load := func() ([]int64, error) {
		program, err := intcode.LoadFile(file)
		if err != nil {
			return nil, err
		}
		return applyPatches(program, patches)
	}
	opts := []intcode.Option{
		intcode.Inputs(inputs...),
		intcode.Observe(intcode.LogObserver(log.Default())),
	}

	var (
		r    *runner
		done = make(chan error, 1)
	)
	if debug {
		d := newDebugger()
		r = newRunner(true, d.StateFunc, opts...)
		d.run = r
		log.SetPrefix("")
		log.SetOutput(d.log)
		go func() {
			err := d.Run()
			log.SetOutput(os.Stderr)
			log.SetPrefix("intcode: ")
			r.Exit()
			done <- err
		}()
	} else {
		r = newRunner(false, nil, opts...)
	}

	programCh := make(chan []int64)
	go func() {
		started := false
		run := time.After(1 * time.Millisecond)
		for {
			select {
			case <-run:
				log.Printf("dev: load %s", filepath.Base(file))
				program, err := load()
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				if !started {
					log.Printf("dev: start")
					programCh <- program
					started = true
				} else {
					log.Printf("dev: reset")
					r.Swap(program)
				}
			case ev := <-watcher.Event:
				if ev.Name == file && !ev.IsAttrib() {
					run = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			case <-r.exit:
				return
			}
		}
	}()

	select {
	case program := <-programCh:
		r.Run(program)
	case err := <-done:
		return errors.Wrap(err, "debugger")
	}
	return errors.Wrap(<-done, "debugger")
}
