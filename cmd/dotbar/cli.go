package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"dotbar/engine"
	"github.com/Zyko0/go-sdl3/bin/binimg"
	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/bin/binttf"
)

func init() {
	runtime.LockOSThread()
}

func colorFlag(name string, value engine.Color, usage string) *engine.Color {
	c := value
	flag.TextVar(&c, name, value, usage)
	return &c
}

func main() {
	defer binsdl.Load().Unload()
	defer binimg.Load().Unload()
	defer binttf.Load().Unload()

	cfg := engine.DefaultConfig()

	schedule := flag.String("schedule", "", "Name of the traversal schedule to run (required)")
	scheduleFile := flag.String("schedules", cfg.ScheduleFile, "JSON file of named traversal schedules")
	paramsFile := flag.String("params", "", "JSON file overriding experiment parameters")
	outputFile := flag.String("output", cfg.OutputFile, "Output CSV file base name")
	startSplash := flag.String("start-splash", "", "Start splash image")
	endSplash := flag.String("end-splash", "", "End splash image")
	fontFile := flag.String("font", "", "TTF font file for instructions")
	fontSize := flag.Int("font-size", cfg.FontSize, "Font size")
	dlpDevice := flag.String("dlp", "", "DLP-IO8-G device")
	screenW := flag.Int("width", cfg.ScreenWidth, "Screen width")
	screenH := flag.Int("height", cfg.ScreenHeight, "Screen height")
	displayIdx := flag.Int("display", 0, "Display index")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	noVSync := flag.Bool("no-vsync", false, "Disable VSync")
	fullscreen := flag.Bool("fullscreen", false, "Enable fullscreen")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	bgColor := colorFlag("bg-color", cfg.BGColor, "Background color (R,G,B[,A] or #rrggbb)")
	textColor := colorFlag("text-color", cfg.TextColor, "Text color (R,G,B[,A] or #rrggbb)")

	flag.Parse()

	if *schedule == "" {
		fmt.Println("Error: --schedule is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg.Schedule = *schedule
	cfg.ScheduleFile = *scheduleFile
	cfg.ParamsFile = *paramsFile
	cfg.OutputFile = *outputFile
	cfg.StartSplash = *startSplash
	cfg.EndSplash = *endSplash
	cfg.FontFile = *fontFile
	cfg.FontSize = *fontSize
	cfg.DLPDevice = *dlpDevice
	cfg.ScreenWidth = *screenW
	cfg.ScreenHeight = *screenH
	cfg.DisplayIndex = *displayIdx
	cfg.Seed = *seed
	cfg.VSync = !*noVSync
	cfg.Fullscreen = *fullscreen
	cfg.LogLevel = *logLevel
	cfg.BGColor = *bgColor
	cfg.TextColor = *textColor

	engine.Run(cfg)
}
