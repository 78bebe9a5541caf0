package policy

import (
	"net"
	"strconv"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
	"github.com/ossguard/nodefw/pattern"
	"github.com/ossguard/nodefw/scanner/credential"
)

func decideNetwork(req access.Request, cfg config.Config) access.Verdict {
	var v access.Verdict
	switch req.Kind {
	case access.NetConnect, access.NetResolve:
		v = decideNetConnect(req, cfg)
	case access.NetSend:
		v = decideNetSend(req, cfg)
	default:
		return access.AllowPassed()
	}

	if v.Decision == access.Deny && cfg.Network.Mode == config.NetworkModeMonitor {
		return v.Downgraded()
	}

	return v
}

// hostOf extracts the host portion of a "host:port" target, tolerating a
// bare host with no port.
func hostOf(target string) string {
	host, _, err := net.SplitHostPort(target)
	if err != nil {
		return target
	}
	return host
}

func portOf(target string) (uint16, bool) {
	_, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return 0, false
	}

	p, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return 0, false
	}

	return uint16(p), true
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func isPrivateNetwork(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

func decideNetConnect(req access.Request, cfg config.Config) access.Verdict {
	if !cfg.Network.Enabled {
		return access.AllowPassed()
	}

	host := hostOf(req.Target)

	if cfg.Network.AllowLocalhost && isLoopback(host) {
		return access.AllowPassed()
	}

	if cfg.Network.AllowPrivateNetworks && isPrivateNetwork(host) {
		return access.AllowPassed()
	}

	if p, hit := pattern.MatchedDomain(host, cfg.Network.BlockedDomains); hit {
		return access.DenyWithReason(access.ReasonBlockedDomain, access.SeverityHigh).
			WithObservable(access.Observable{MatchedPattern: p})
	}

	if port, ok := portOf(req.Target); ok && containsPort(cfg.Network.SuspiciousPorts, port) {
		return access.DenyWithReason(access.ReasonSuspiciousPort, access.SeverityHigh)
	}

	if len(cfg.Network.AllowedDomains) > 0 && !pattern.DomainHit(host, cfg.Network.AllowedDomains) {
		return access.DenyWithReason(access.ReasonNotInAllowlist, access.SeverityMedium)
	}

	return access.AllowPassed()
}

func containsPort(ports []uint16, p uint16) bool {
	for _, x := range ports {
		if x == p {
			return true
		}
	}
	return false
}

func decideNetSend(req access.Request, cfg config.Config) access.Verdict {
	// The host-level rules still apply to the connection underlying a
	// send; re-run them before scanning the payload.
	if v := decideNetConnect(req, cfg); v.Decision != access.Allow {
		return v
	}

	if len(req.Payload) == 0 {
		return access.AllowPassed()
	}

	scanner := credential.New(cfg.Network.CredentialPatterns)
	if m, hit := scanner.Scan(req.Payload, credential.DefaultInspectionCap); hit {
		return access.DenyWithReason(access.ReasonCredentialPattern, access.SeverityCritical).
			WithObservable(access.Observable{MatchedPattern: m.PatternID})
	}

	return access.AllowPassed()
}
