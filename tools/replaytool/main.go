package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"boingle/internal/infrastructure/storage"
	"boingle/pkg/logger"
)

func main() {
	logger.Init()
	logger.Silence()

	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool info <file.bgrp>")
			return
		}
		if err := printInfo(os.Args[2], false); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	case "actions":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool actions <file.bgrp>")
			return
		}
		if err := printInfo(os.Args[2], true); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	case "time":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaytool time <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).UTC().Format(time.RFC3339))
	default:
		printHelp()
	}
}

func printInfo(path string, withActions bool) error {
	svc := &storage.ReplayService{}
	rec, err := svc.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("session:  %s\n", rec.RunID)
	fmt.Printf("seed:     %d\n", rec.Seed)
	fmt.Printf("preset:   %s\n", rec.Preset)
	fmt.Printf("recorded: %s\n", time.Unix(rec.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Printf("frames:   %d\n", rec.Frames)
	fmt.Printf("actions:  %d\n", len(rec.Actions))

	if withActions {
		for _, a := range rec.Actions {
			fmt.Printf("%8d  %-18s %s\n", a.Frame, a.Action, string(a.Payload))
		}
	}
	return nil
}

func printHelp() {
	fmt.Println(`Replay Tool - просмотр файлов реплеев .bgrp
Commands:
  info <file>        - заголовок реплея (сид, пресет, число кадров)
  actions <file>     - заголовок и все записанные команды
  time <timestamp>   - преобразовать Unix время в читаемый формат`)
}
