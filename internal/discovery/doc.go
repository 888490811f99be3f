// Package discovery finds picker servers on the local network over mDNS.
//
// `picker serve --advertise` registers a "_picker._tcp" service with TXT
// records describing the server:
//
//	version=v1.2.0
//	path=/ws
//	tls=false
//
// `picker scan` browses for that service type and lists what answers.
//
// # Usage Example
//
//	stop, err := discovery.Advertise("picker on desk", 7878, map[string]string{"path": "/ws"})
//	if err != nil {
//	    return err
//	}
//	defer stop()
//
//	scanner := discovery.NewScanner()
//	servers, err := scanner.ScanForServers(ctx)
//	for _, s := range servers {
//	    fmt.Println(s.Instance, s.URL())
//	}
//
// # Network Requirements
//
// mDNS uses UDP multicast on port 5353; both ends must share a link and the
// local firewall must allow it. Browsing always waits for the full timeout.
package discovery
