// Package inventory loads the desired-state inventory document and expands
// it into the resource sequence the reconciliation engine consumes.
//
// The document is plain JSON listing sites, device roles, VLANs, IP prefixes
// and devices. Manufacturers and device types are not declared explicitly;
// they are derived from the device entries and de-duplicated. A device
// referencing a site or role that is not declared in the document relies on
// that resource pre-existing in NetBox.
package inventory
