package diagram

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Diagram kinds accepted by Generate.
const (
	KindAll        = "all"
	KindPhysical   = "physical"
	KindLogical    = "logical"
	KindMonitoring = "monitoring"
)

// Generator renders network topology diagrams as Graphviz DOT files.
type Generator struct {
	topo Topology
	log  *zap.Logger
}

func NewGenerator(topo Topology, log *zap.Logger) *Generator {
	return &Generator{topo: topo, log: log}
}

// Generate writes the requested diagram kind into outputDir and returns the
// paths of the files produced.
func (g *Generator) Generate(kind, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var renders []struct {
		name string
		dot  string
	}
	switch kind {
	case KindPhysical:
		renders = append(renders, struct{ name, dot string }{"physical_topology", g.Physical()})
	case KindLogical:
		renders = append(renders, struct{ name, dot string }{"logical_topology", g.Logical()})
	case KindMonitoring:
		renders = append(renders, struct{ name, dot string }{"monitoring_architecture", g.Monitoring()})
	case KindAll:
		renders = append(renders,
			struct{ name, dot string }{"physical_topology", g.Physical()},
			struct{ name, dot string }{"logical_topology", g.Logical()},
			struct{ name, dot string }{"monitoring_architecture", g.Monitoring()},
		)
	default:
		return nil, fmt.Errorf("unknown diagram type %q", kind)
	}

	var paths []string
	for _, r := range renders {
		path := filepath.Join(outputDir, r.name+".dot")
		if err := os.WriteFile(path, []byte(r.dot), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		g.log.Info("Generated diagram", zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// Physical renders the physical cabling topology.
func (g *Generator) Physical() string {
	d := newDotGraph("Physical Network Topology", "TB")

	d.node("internet", "Internet")
	d.cluster("Core Infrastructure", func() {
		d.node("core", g.topo.Core.Name+"\n"+g.topo.Core.IP)
	})
	d.cluster("Server Rack", func() {
		for i, srv := range g.topo.Servers {
			d.node(serverID(i), srv.Name+"\n"+srv.IP)
		}
	})
	d.cluster("Monitoring Stack", func() {
		d.node("prometheus", "Prometheus\n"+g.topo.Monitoring.Prometheus)
		d.node("grafana", "Grafana\n"+g.topo.Monitoring.Grafana)
	})
	d.cluster("End Devices", func() {
		d.node("workstations", "Workstations")
		d.node("iot", "IoT Devices")
	})

	d.edge("internet", "core", `label="WAN"`)
	for i := range g.topo.Servers {
		d.edge("core", serverID(i), `label="VLAN 10"`)
		d.edge(serverID(i), "prometheus")
		d.edge(serverID(i), "grafana")
	}
	d.edge("core", "workstations", `label="VLAN 20"`)
	d.edge("core", "iot", `label="VLAN 30"`)
	d.edge("prometheus", "core", `label="SNMP"`, "style=dashed")

	return d.String()
}

// Logical renders the VLAN segmentation view.
func (g *Generator) Logical() string {
	d := newDotGraph("Logical Network Topology (VLANs)", "LR")

	d.node("core", g.topo.Core.Name)
	for _, vlan := range g.topo.VLANs {
		id := fmt.Sprintf("vlan%d", vlan.ID)
		d.cluster(fmt.Sprintf("VLAN %d - %s\n%s", vlan.ID, vlan.Name, vlan.Subnet), func() {
			d.node(id, vlan.Name+" Devices")
		})
		d.edge("core", id, "color="+vlanColor(vlan.ID))
	}

	return d.String()
}

// Monitoring renders the monitoring stack data flow.
func (g *Generator) Monitoring() string {
	d := newDotGraph("Monitoring Architecture", "TB")

	d.cluster("Network Devices", func() {
		d.node("core", g.topo.Core.Name)
		d.node("endpoints", "External Endpoints")
	})
	d.cluster("Docker Host", func() {
		d.cluster("Exporters", func() {
			d.node("snmp_exporter", "SNMP Exporter\n:9116")
			d.node("node_exporter", "Node Exporter\n:9100")
			d.node("blackbox", "Blackbox\n:9115")
		})
		d.cluster("Monitoring Core", func() {
			d.node("prometheus", "Prometheus\n"+g.topo.Monitoring.Prometheus)
			d.node("alertmanager", "Alertmanager\n"+g.topo.Monitoring.Alertmanager)
		})
		d.cluster("Visualization", func() {
			d.node("grafana", "Grafana\n"+g.topo.Monitoring.Grafana)
		})
	})
	d.cluster("Notifications", func() {
		d.node("slack", "Slack")
	})

	d.edge("core", "snmp_exporter", `label="SNMP"`)
	d.edge("endpoints", "blackbox", `label="ICMP/HTTP"`)
	d.edge("snmp_exporter", "prometheus")
	d.edge("node_exporter", "prometheus")
	d.edge("blackbox", "prometheus")
	d.edge("prometheus", "alertmanager")
	d.edge("prometheus", "grafana")
	d.edge("alertmanager", "slack", `label="Webhook"`)

	return d.String()
}

func serverID(i int) string {
	return fmt.Sprintf("server%d", i)
}

// vlanColor picks a stable edge color per segment so the four standard
// VLANs keep their familiar colors.
func vlanColor(id int) string {
	switch id {
	case 10:
		return "green"
	case 20:
		return "blue"
	case 30:
		return "orange"
	case 100:
		return "red"
	default:
		return "black"
	}
}
