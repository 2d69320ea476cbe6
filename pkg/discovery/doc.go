// Package discovery announces multitimer web boards on the local network
// over mDNS/DNS-SD and finds boards announced by other hosts.
//
// A board is advertised as a "_multitimer._tcp" service. Its TXT record
// carries the protocol version ("ver") and the HTTP path of the board
// ("path"):
//
//	kitchen._multitimer._tcp.local.  port 8080  "ver=1" "path=/"
package discovery
