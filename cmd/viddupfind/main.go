/*
DESCRIPTION
  viddupfind is a command-line tool for finding visually duplicate videos
  under one or more directories, using perceptual video hashing.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the viddupfind command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/device/videofile"
	"github.com/ausocean/vidhash/finder"
	"github.com/ausocean/vidhash/vdconfig"
	"github.com/ausocean/vidhash/vhash"
)

// Logging configuration, mirroring the rest of the AusOcean fleet's
// rotation policy.
const (
	logPath      = "viddupfind.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	pkg          = "viddupfind: "
)

func main() {
	var (
		include       = pflag.StringSliceP("include", "i", nil, "Directories to search for video files. Required, may be repeated.")
		exclude       = pflag.StringSliceP("exclude", "x", nil, "Directories to exclude from the search, even if nested under an include directory.")
		excludeExts   = pflag.StringSlice("exclude-ext", []string{".txt", ".jpg", ".png"}, "File extensions to exclude from the search.")
		tolerance     = pflag.Float64P("tolerance", "t", vdconfig.DefaultTolerance, "Match tolerance in [0, 1]; lower is stricter.")
		cachePath     = pflag.StringP("cache", "c", vdconfig.DefaultCacheFile, "Path to the persistent hash cache file.")
		saveThreshold = pflag.Int("save-threshold", vdconfig.DefaultSaveThreshold, "Number of dirty cache entries that triggers an automatic save.")
		workers       = pflag.IntP("workers", "w", 0, "Number of concurrent hashing workers. 0 selects the number of CPUs.")
		forceUpdate   = pflag.Bool("force-update", false, "Rehash every candidate file, ignoring cached results.")
		verbose       = pflag.BoolP("verbose", "v", false, "Enable debug-level logging.")
	)
	pflag.Parse()

	if len(*include) == 0 {
		fmt.Fprintln(os.Stderr, "viddupfind: at least one --include path is required")
		pflag.Usage()
		os.Exit(2)
	}

	verbosity := logging.Info
	if *verbose {
		verbosity = logging.Debug
	}
	log := logging.New(verbosity, &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxAge:     logMaxAge,
		MaxBackups: logMaxBackup,
	}, true)

	cfg := &vdconfig.Config{
		Include:        *include,
		Exclude:        *exclude,
		ExcludeExts:    *excludeExts,
		DCTSize:        vhash.DefaultDCTSize,
		HashSize:       vhash.DefaultHashSize,
		Tolerance:      *tolerance,
		CachePath:      *cachePath,
		SaveThreshold:  *saveThreshold,
		Workers:        *workers,
		DecoderBackend: videofile.BackendName,
		Logger:         log,
	}

	src := videofile.New()
	build := func(path string) (vhash.VideoHash, error) {
		return vhash.Hash(src, path, cfg.HashOptions())
	}

	f, err := finder.New(cfg, build)
	if err != nil {
		log.Error("could not start finder", "error", err.Error())
		os.Exit(1)
	}

	if *forceUpdate {
		log.Info("force-update set; ignoring cached results")
	}

	groups, hashErrs, err := f.Run(*forceUpdate)
	if err != nil {
		log.Error("search failed", "error", err.Error())
		os.Exit(1)
	}

	for _, e := range hashErrs {
		log.Warning("error processing file", "error", e.Error())
	}

	if err := f.Cache().Save(); err != nil {
		log.Error("could not save cache", "error", err.Error())
	}

	if len(groups) == 0 {
		fmt.Println("no duplicate videos found")
		return
	}

	for i, g := range groups {
		fmt.Printf("duplicate group %d:\n", i+1)
		for _, p := range g.AllPaths() {
			fmt.Printf("  %s\n", p)
		}
	}
}
