// haptic-web - real-time dashboard for the haptic pipeline.
//
// Serves the REST API and websocket event feed, and runs the sensor
// monitor loop against the configured device so touches show up live.
//
// Usage:
//
//	DEVICE_IP=192.168.1.100 haptic-web -port 8080
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FujiiNoritsugu/go-haptic/internal/config"
	"github.com/FujiiNoritsugu/go-haptic/internal/history"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/hub"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
	"github.com/FujiiNoritsugu/go-haptic/pkg/web"
)

func main() {
	port := flag.String("port", "8080", "dashboard HTTP port")
	monitor := flag.Bool("monitor", true, "run the sensor monitor loop")
	flag.Parse()

	log.Init(os.Getenv("LOG_LEVEL"))

	deviceIP := config.DeviceIPRequired()

	manager := device.NewManager()
	client := device.NewClient(deviceIP, config.DevicePort())
	manager.Add("default", client)

	ctx, cancel := context.WithTimeout(context.Background(), device.DefaultTimeout)
	if !client.Connect(ctx) {
		log.Warn("device not reachable at startup, dashboard runs anyway",
			"url", client.BaseURL())
	}
	cancel()

	hist := history.Open(config.HistoryPath())
	defer hist.Close()

	events := hub.New("haptic-events")

	// Sensor triggers feed back into the pipeline: log them, show them on
	// the dashboard and answer with the level's feedback pattern.
	var mon *device.Monitor
	if *monitor {
		mon = device.NewMonitor(client, func(ev device.SensorEvent) {
			hist.Record(history.Entry{
				Kind:    history.KindSensor,
				Device:  "default",
				Success: true,
			})
			events.Publish(hub.NewEvent(hub.KindSensor, "default", ev))

			dctx, dcancel := context.WithTimeout(context.Background(), 10*time.Second)
			client.SendPattern(dctx, pattern.ForLevel(ev.Level))
			dcancel()
		})
		mon.Run()
	}

	server := web.NewServer(*port, manager, hist, events)
	server.StartAsync()
	fmt.Printf("Dashboard: http://localhost:%s\n", *port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	if mon != nil {
		mon.Stop()
	}
	server.Shutdown()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	manager.StopAll(stopCtx)
	stopCancel()
}
