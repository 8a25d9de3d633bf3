package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sonicbind/portaudio/portaudio"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List available audio devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(listDevices)
		},
	}
}

func newHostApisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hostapis",
		Short: "List available host APIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(listHostApis)
		},
	}
}

func listDevices() error {
	devices, err := portaudio.Devices()
	if err != nil {
		return err
	}

	defIn, defOut := -1, -1
	if d, err := portaudio.DefaultInputDevice(); err == nil {
		defIn = d.Index
	}
	if d, err := portaudio.DefaultOutputDevice(); err == nil {
		defOut = d.Index
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tNAME\tIN\tOUT\tRATE\t")
	for _, d := range devices {
		mark := ""
		if d.Index == defIn {
			mark += " *in"
		}
		if d.Index == defOut {
			mark += " *out"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.0f\t%s\n",
			d.Index, d.Name, d.MaxInputChannels, d.MaxOutputChannels, d.DefaultSampleRate, mark)
	}
	return w.Flush()
}

func listHostApis() error {
	apis, err := portaudio.HostApis()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tDEVICES\tDEF IN\tDEF OUT\t")
	for _, a := range apis {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t\n",
			a.Type, a.Name, a.DeviceCount, a.DefaultInputDevice, a.DefaultOutputDevice)
	}
	return w.Flush()
}
