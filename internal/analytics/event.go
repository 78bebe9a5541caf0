// Package analytics is the ambient, opt-in telemetry layer: a handful of
// named command/lifecycle events reported to PostHog when
// analytics.enabled is set in configuration. It carries no request
// targets, payloads, or secrets — only event names and counts.
package analytics

import "github.com/posthog/posthog-go"

const (
	eventFirewallStart  = "firewall_start"
	eventFirewallReload = "firewall_config_reload"
	eventFirewallExit   = "firewall_exit"
)

var client posthog.Client

// Init constructs the PostHog client used by TrackEvent. Passing an
// empty apiKey leaves analytics disabled; TrackEvent becomes a no-op.
func Init(apiKey string) error {
	if apiKey == "" {
		client = nil
		return nil
	}

	c, err := posthog.NewWithConfig(apiKey, posthog.Config{})
	if err != nil {
		return err
	}

	client = c
	return nil
}

// Close flushes and releases the PostHog client, if any.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// TrackEvent enqueues a named event with no properties beyond a fixed
// distinct id, swallowing enqueue errors: telemetry must never affect
// the firewall's own decisions or exit code.
func TrackEvent(name string) {
	if client == nil {
		return
	}

	_ = client.Enqueue(posthog.Capture{
		DistinctId: "nodefw-cli",
		Event:      name,
	})
}

// TrackStart records that the firewall initialized in this process.
func TrackStart() { TrackEvent(eventFirewallStart) }

// TrackReload records a successful configuration reload.
func TrackReload() { TrackEvent(eventFirewallReload) }

// TrackExit records process exit, with the assessed risk level as the
// only property — never raw targets or payloads.
func TrackExit(risk string) {
	if client == nil {
		return
	}

	_ = client.Enqueue(posthog.Capture{
		DistinctId: "nodefw-cli",
		Event:      eventFirewallExit,
		Properties: posthog.NewProperties().Set("risk", risk),
	})
}
