// Package transport moves chat datagrams between participants of one group.
//
// Multicast is the network implementation: a UDP socket bound to the group
// port with address reuse, joined to an IPv4 multicast group, with loopback
// enabled so a participant receives its own traffic. Hub is an in-memory
// multicast group for tests and local simulation.
//
// Both satisfy domain.Transport. Failures are reported as *Error values
// naming the failed operation; there is no retry.
package transport
