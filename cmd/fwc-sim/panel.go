package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sweeney/fwc-sim/internal/config"
	"github.com/sweeney/fwc-sim/internal/gpio"
)

func runPanel(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	pins, err := cfg.Pins()
	if err != nil {
		return err
	}
	reader, err := gpio.NewRealReader(cfg.GPIO.Chip, pins)
	if err != nil {
		return errors.Wrap(err, "init gpio")
	}
	defer reader.Close()

	return printPanel(cmd.OutOrStdout(), reader)
}

func printPanel(w io.Writer, reader gpio.Reader) error {
	p, err := reader.Read()
	if err != nil {
		return errors.Wrap(err, "read gpio")
	}
	for _, b := range gpio.Buttons() {
		fmt.Fprintf(w, "%-18s %s\n", b.String()+":", pressedString(p[b]))
	}
	return nil
}

func pressedString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}
