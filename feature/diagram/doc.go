// Package diagram renders network topology diagrams as Graphviz DOT
// documents. Three views are supported: the physical cabling layout, the
// logical VLAN segmentation, and the monitoring stack data flow. The DOT
// output can be turned into images with any Graphviz renderer.
package diagram
