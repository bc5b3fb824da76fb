// Command button-notify watches a push button and forwards one notification
// per click, reflecting device status on a single LED.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sweeney/button-notify/internal/button"
	"github.com/sweeney/button-notify/internal/config"
	"github.com/sweeney/button-notify/internal/gpio"
	"github.com/sweeney/button-notify/internal/led"
	"github.com/sweeney/button-notify/internal/notify"
	"github.com/sweeney/button-notify/internal/status"
	"github.com/sweeney/button-notify/internal/web"
	"github.com/sweeney/button-notify/internal/wifi"
)

func main() {
	cfgPath := flag.String("config", "/etc/button-notify.yaml", "Path to YAML configuration")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	flag.Parse()

	if err := run(*cfgPath, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfgPath, httpAddr string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Initialize GPIO
	in, err := gpio.NewRealInput(cfg.Device.Chip, cfg.Device.ButtonPin)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer in.Close()

	out, err := gpio.NewRealOutput(cfg.Device.Chip, cfg.Device.LEDPin)
	if err != nil {
		return fmt.Errorf("init led: %w", err)
	}
	defer out.Close()

	// Initialize the notification transport
	sender, closeSender, err := buildSender(cfg.Notify)
	if err != nil {
		return err
	}
	defer closeSender()

	tracker := status.NewTracker(time.Now(), status.Config{
		ButtonPin: cfg.Device.ButtonPin,
		LEDPin:    cfg.Device.LEDPin,
		Interface: cfg.Wifi.Interface,
		Transport: cfg.Notify.Transport,
		QueueCap:  cfg.Notify.QueueCapacity,
		HTTPAddr:  httpAddr,
	})

	sig := led.NewSignal()
	// Every status request is mirrored to the tracker for the status page.
	set := func(s led.Status) {
		tracker.SetIndicator(s)
		sig.Set(s)
	}

	queue := notify.NewQueue(cfg.Notify.QueueCapacity)
	queue.OnDrop(tracker.CountDropped)

	link := wifi.NewInterfaceLink(cfg.Wifi.Interface)
	reporter := wifi.NewReporter(link, set)
	reporter.OnChange(tracker.SetLink)

	worker := notify.NewWorker(queue, link, sender, set)
	worker.MaxAge = time.Duration(cfg.Notify.MaxAgeMs) * time.Millisecond
	worker.OnResult(tracker.CountDelivery)

	src := button.New(in, time.Duration(cfg.Device.SettleMs)*time.Millisecond)
	renderer := led.NewRenderer(out, sig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	start := func(fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}

	start(renderer.Run)
	start(src.Run)
	start(reporter.Run)
	start(worker.Run)

	if cfg.Wifi.Manage {
		creds := wifi.Credentials{SSID: cfg.Wifi.SSID, Password: cfg.Wifi.Password}
		sup := wifi.NewSupervisor(wifi.NewNMController(cfg.Wifi.Interface), creds, set, nil)
		sup.OnState(tracker.SetWifi)
		start(sup.Run)
	}

	// Clicks become queued notifications; the worker does the rest.
	start(func(ctx context.Context) {
		for {
			if err := src.WaitForClick(ctx); err != nil {
				return
			}
			log.Printf("button: click")
			tracker.CountClick()
			if queue.Enqueue(cfg.Notify.Message) {
				tracker.CountEnqueued()
			}
		}
	})

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: transport=%s queue=%d button_pin=%d led_pin=%d iface=%s",
		cfg.Notify.Transport, cfg.Notify.QueueCapacity,
		cfg.Device.ButtonPin, cfg.Device.LEDPin, cfg.Wifi.Interface)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigCh
	log.Printf("received %v, shutting down", s)

	cancel()
	wg.Wait()
	return nil
}

// buildSender constructs the configured notification transport.
func buildSender(cfg config.NotifyConfig) (notify.Sender, func(), error) {
	switch cfg.Transport {
	case "mqtt":
		s, err := notify.NewMQTTSender(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
		if err != nil {
			return nil, nil, fmt.Errorf("init mqtt: %w", err)
		}
		return s, func() { s.Close() }, nil
	default:
		s, err := notify.NewTelegramSender(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			return nil, nil, fmt.Errorf("init telegram: %w", err)
		}
		return s, func() {}, nil
	}
}
