// buzz - fire a vibration pattern at a device from the command line.
//
// Hardware smoke test: no agent, no server, just one dispatch.
//
// Usage:
//
//	DEVICE_IP=192.168.1.100 buzz -pattern burst -intensity 0.9
//	DEVICE_IP=192.168.1.100 buzz -joy 5 -fun 3
//	DEVICE_IP=192.168.1.100 buzz -alert earthquake
//	DEVICE_IP=192.168.1.100 buzz -stop
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/FujiiNoritsugu/go-haptic/internal/config"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

func main() {
	var (
		patternType = flag.String("pattern", "", "waveform type: pulse, wave, burst or fade")
		intensity   = flag.Float64("intensity", 0.5, "drive level 0.0-1.0")
		durationMS  = flag.Int("duration", 500, "cycle duration in milliseconds")
		repeat      = flag.Int("repeat", 1, "cycle repeat count")

		joy   = flag.Int("joy", 0, "joy level 0-5")
		fun   = flag.Int("fun", 0, "fun level 0-5")
		anger = flag.Int("anger", 0, "anger level 0-5")
		sad   = flag.Int("sad", 0, "sadness level 0-5")

		alert = flag.String("alert", "", "alert kind: earthquake, machine_fault or proximity_warning")
		stop  = flag.Bool("stop", false, "stop any running vibration and exit")
		scale = flag.Int("scale", 100, "intensity encoding: 100 or 255")
	)
	flag.Parse()

	log.Init(os.Getenv("LOG_LEVEL"))

	enc := pattern.Scale100
	if *scale == 255 {
		enc = pattern.Scale255
	}
	client := device.NewClient(config.DeviceIPRequired(), config.DevicePort(),
		device.WithScale(enc))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *stop {
		if !client.Stop(ctx) {
			fmt.Fprintln(os.Stderr, "stop failed")
			os.Exit(1)
		}
		fmt.Println("stopped")
		return
	}

	if !client.Connect(ctx) {
		fmt.Fprintf(os.Stderr, "device not ready at %s\n", client.BaseURL())
		os.Exit(1)
	}

	p, desc := buildPattern(*patternType, *intensity, *durationMS, *repeat,
		emotion.New(*joy, *fun, *anger, *sad), *alert)
	if p.IsZero() {
		fmt.Fprintln(os.Stderr, "nothing to send: give -pattern, emotion levels or -alert")
		os.Exit(1)
	}

	fmt.Printf("Sending %s to %s...\n", desc, client.BaseURL())
	if !client.SendPattern(ctx, p) {
		fmt.Fprintln(os.Stderr, "dispatch failed")
		os.Exit(1)
	}
	fmt.Println("dispatched")
}

// buildPattern resolves the three input modes in priority order:
// explicit waveform, then emotion vector, then alert.
func buildPattern(patternType string, intensity float64, durationMS, repeat int, v emotion.Vector, alert string) (pattern.Pattern, string) {
	switch {
	case patternType != "":
		return pattern.Custom(pattern.Type(patternType), intensity, durationMS, repeat),
			fmt.Sprintf("%s (intensity %.2f)", patternType, intensity)
	case !v.IsZero():
		settings := pattern.Generate(v)
		return settings.Build(),
			fmt.Sprintf("%s (%s)", settings.Pattern, settings.Description)
	case alert != "":
		return pattern.Alert(alert), "alert " + alert
	default:
		return pattern.Zero(), ""
	}
}
