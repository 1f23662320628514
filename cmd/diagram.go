package cmd

import (
	"fmt"

	"netbox-sync/core/config"
	"netbox-sync/core/logger"
	"netbox-sync/feature/diagram"

	"github.com/spf13/cobra"
)

var (
	diagramType     string
	diagramOutput   string
	diagramTopology string
)

// diagramCmd renders topology diagrams from the network layout.
var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Render network topology diagrams",
	Long: `Diagram renders the network layout as Graphviz DOT files. Three views
are available: physical (cabling), logical (VLAN segmentation) and
monitoring (metrics data flow). Feed the output to dot(1) to get images:

  netbox-sync diagram --type logical
  dot -Tpng diagrams/logical_topology.dot -o logical.png`,
	RunE: runDiagram,
}

func init() {
	diagramCmd.Flags().StringVarP(&diagramType, "type", "t", diagram.KindAll, "Diagram type: all, physical, logical or monitoring")
	diagramCmd.Flags().StringVarP(&diagramOutput, "output", "o", "diagrams", "Output directory")
	diagramCmd.Flags().StringVarP(&diagramTopology, "inventory", "i", "", "Topology JSON file (built-in layout when omitted)")
	RootCmd.AddCommand(diagramCmd)
}

func runDiagram(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	topo := diagram.DefaultTopology()
	if diagramTopology != "" {
		topo, err = diagram.LoadTopology(diagramTopology)
		if err != nil {
			return err
		}
	}

	gen := diagram.NewGenerator(topo, l)
	if _, err := gen.Generate(diagramType, diagramOutput); err != nil {
		return err
	}
	return nil
}
