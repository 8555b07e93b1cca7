// ABOUTME: Lists audio output devices and optionally prompts for one
// ABOUTME: Prints the ENGINE_AUDIO_DEVICE value for the chosen device
package main

import (
	"fmt"
	"os"

	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/backend"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/device"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	backendName := pflag.String("audio-backend", backend.Auto, "Audio backend: auto, portaudio, oto or dummy")
	preferred := pflag.String("preferred-device-name", "pipewire", "Device name substring offered as default")
	preferBackend := pflag.Bool("prefer-pipewire", true, "Offer the preferred device as default")
	prompt := pflag.Bool("prompt", true, "Ask for a device when stdin is a terminal")
	debug := pflag.Bool("debug", false, "Also print input-only devices")
	pflag.Parse()

	b, err := backend.Open(*backendName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Audio backend unavailable: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = b.Terminate() }()

	snap, err := device.NewCatalog(b, *preferred).Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Device query failed: %v\n", err)
		_ = b.Terminate()
		os.Exit(1)
	}

	fmt.Printf("Backend: %s\n", b.Name())
	if *debug {
		device.WriteDebug(os.Stdout, snap, nil)
	}

	outs := snap.Outputs()
	defIdx, ok := snap.DefaultOutputIndex(*preferred, *preferBackend)
	if !ok {
		defIdx = -1
	}
	device.WriteListing(os.Stdout, outs, defIdx)
	if len(outs) == 0 {
		return
	}

	chosen := defIdx
	fd := os.Stdin.Fd()
	if *prompt && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		chosen, _ = device.Prompt(os.Stdin, os.Stdout, outs, defIdx)
	}
	if chosen < 0 {
		chosen = outs[0].Index
	}

	d, _ := snap.Lookup(chosen)
	fmt.Printf("\nSelected output device: [%d] %s\n", d.Index, d.Name)
	fmt.Printf("Run with ENGINE_AUDIO_DEVICE=%d to use it.\n", d.Index)
}
