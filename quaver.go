// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"runtime/pprof"

	tviewcommand "github.com/spezifisch/tview-command"
	"github.com/spf13/viper"

	"github.com/quaverhq/quaver/engine"
	"github.com/quaverhq/quaver/library"
	"github.com/quaverhq/quaver/logger"
	"github.com/quaverhq/quaver/remote"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests
var testMode bool     // This can be set to true during tests, too

const DEVELOPMENT = "development"

// clientName shows up in the top bar and as the MPRIS identity
var clientName string = "quaver"

// clientVersion is the program version; usually set from BuildInfo
var clientVersion string = DEVELOPMENT

// bootstrapReport collects what startup managed to wire up. It is logged
// once the ui is running, so a missing config or keymap never fails
// silently.
type bootstrapReport struct {
	configLoaded bool
	configError  string
	keymapLoaded bool
	libraryRoot  string
	mprisEnabled bool
}

func (r bootstrapReport) log(logger *logger.Logger) {
	if r.configLoaded {
		logger.Print("bootstrap: config loaded")
	} else {
		logger.Printf("bootstrap: no config, using defaults (%s)", r.configError)
	}
	if !r.keymapLoaded {
		logger.Print("bootstrap: no keymap config, using built-in bindings")
	}
	logger.Printf("bootstrap: library root %s", r.libraryRoot)
	logger.Printf("bootstrap: mpris enabled %t", r.mprisEnabled)
}

// readConfig loads the optional config file. Unlike a server client there
// is nothing required in it; every setting has a default.
func readConfig(configFile *string, report *bootstrapReport) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("library.path", filepath.Join(home, "Music"))
	viper.SetDefault("playback.volume", 100)
	viper.SetDefault("playback.loop", false)
	viper.SetDefault("mpris.enabled", false)

	if configFile != nil && *configFile != "" {
		// use custom config file
		viper.SetConfigFile(*configFile)
	} else {
		// lookup default dirs
		viper.SetConfigName("quaver")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/quaver")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		report.configLoaded = false
		report.configError = err.Error()
		return
	}
	report.configLoaded = true
}

// initCommandHandler sets up tview-command as main input handler
func initCommandHandler(logger *logger.Logger, report *bootstrapReport) {
	tviewcommand.SetLogHandler(func(msg string) {
		logger.Print(msg)
	})

	configPath := filepath.Join("$HOME", ".config", "quaver", "commands.toml")

	// Load the configuration file
	config, err := tviewcommand.LoadConfig(os.ExpandEnv(configPath))
	if err != nil || config == nil {
		report.keymapLoaded = false
		return
	}
	report.keymapLoaded = true
}

// return codes:
// 0 - OK
// 1 - generic errors
// 2 - library errors
func main() {
	// parse flags and config
	help := flag.Bool("help", false, "Print usage")
	enableMpris := flag.Bool("mpris", false, "Enable MPRIS2")
	list := flag.Bool("list", false, "list the library and exit")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	configFile := flag.String("config", "", "use config `file`")
	version := flag.Bool("version", false, "print the quaver version and exit")

	flag.Parse()
	if *help {
		fmt.Printf("USAGE: %s <args>\n", os.Args[0])
		flag.Usage()
		osExit(0)
	}
	if clientVersion == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok {
			clientVersion = bi.Main.Version
		}
	}
	if *version {
		fmt.Printf("quaver %s", clientVersion)
		osExit(0)
	}

	// cpu/memprofile code straight from https://pkg.go.dev/runtime/pprof
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	report := bootstrapReport{}
	readConfig(configFile, &report)

	logger := logger.Init()
	initCommandHandler(logger, &report)

	libraryRoot := viper.GetString("library.path")
	report.libraryRoot = libraryRoot

	if *list {
		files, err := library.FindFiles(libraryRoot)
		if err != nil {
			fmt.Printf("Error scanning library %s: %s\n", libraryRoot, err)
			osExit(2)
		}
		fmt.Printf("%-27s: %s\n", "Library", libraryRoot)
		fmt.Printf("%-27s: %d\n", "Tracks", len(files))
		for i, path := range files {
			track := engine.ReadTrack(path, i)
			fmt.Printf("  %s - %s (%s)\n", track.Artist, track.Title, formatTime(track.Duration))
		}
		osExit(0)
	}

	if testMode {
		fmt.Println("Running in test mode for testing.")
		osExit(0x23420001)
		return
	}

	if headlessMode {
		fmt.Println("Running in headless mode for testing.")
		osExit(0)
		return
	}

	// init playback engine
	player, err := engine.NewEngine(logger)
	if err != nil {
		fmt.Printf("Unable to initialize audio output: %s\n", err)
		osExit(1)
	}

	var mprisPlayer *remote.MprisPlayer
	// init mpris2 player control (linux only but fails gracefully on other systems)
	if *enableMpris || viper.GetBool("mpris.enabled") {
		mprisPlayer, err = remote.RegisterMprisPlayer(player, logger)
		if err != nil {
			// keep playing without remote control
			logger.PrintError("registering MPRIS with DBUS", err)
		} else {
			report.mprisEnabled = true
			defer mprisPlayer.Close()
		}
	}

	volumePercent := viper.GetInt("playback.volume")
	looped := viper.GetBool("playback.loop")
	if err := player.SetVolume(volumeToFloat(volumePercent)); err != nil {
		logger.PrintError("initial volume", err)
	}
	if looped {
		if err := player.SetLooped(true); err != nil {
			logger.PrintError("initial loop", err)
		}
	}

	lib := library.New(libraryRoot, logger)
	defer lib.Close()

	ui := InitGui(player, lib, logger, mprisPlayer, volumePercent, looped)
	report.log(logger)

	// run main loop
	if err := ui.Run(); err != nil {
		panic(err)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
