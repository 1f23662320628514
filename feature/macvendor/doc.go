// Package macvendor identifies device manufacturers from MAC addresses.
//
// Lookups go to an online OUI database whose free tier allows one request
// per second, so the service carries a client-side rate limiter and a
// persistent OUI cache. A MAC without a registered vendor is classified as
// locally administered when bit 1 of its first octet is set, unknown
// otherwise. The CSV mode enriches an exported device inventory in place.
package macvendor
