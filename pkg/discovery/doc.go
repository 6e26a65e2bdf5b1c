// Package discovery provides mDNS browsing for HTTPS endpoints on the
// local network, as an alternative to naming a host explicitly.
//
// Browsing watches the _https._tcp service type and aggregates
// announcements by instance name, so a service visible on several
// interfaces appears once with all of its addresses.
package discovery
