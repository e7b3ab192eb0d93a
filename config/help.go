package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
cabshare - intercity cab booking with shared rides

Usage:
  cabshare -mode <service> [-config-path config.yaml]
  cabshare --help

Options:
  -mode          booking-service | driver-service
  -config-path   path to the config yaml file (default config.yaml)
  --help         show this message

Environment variables override the yaml file; a .env file in the working
directory is loaded first. See config.yaml for every key.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
