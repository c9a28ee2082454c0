// ABOUTME: mDNS service discovery package
// ABOUTME: Discover and advertise speech provider servers on the local network
// Package discovery provides mDNS discovery for speech provider servers.
//
// The dev server advertises itself as a _voice-studio._tcp service;
// the studio browses for providers so no address needs configuring on
// a local network.
//
// Example:
//
//	mgr := discovery.NewManager(discovery.Config{InstanceName: "dev", Port: 8926})
//	mgr.Browse()
//	for server := range mgr.Servers() {
//	    fmt.Printf("Found: %s at %s\n", server.Name, server.Addr())
//	}
package discovery
