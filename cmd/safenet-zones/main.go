package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shambhavi-kumar59/safenet/internal/models"
	"github.com/shambhavi-kumar59/safenet/internal/zones"
)

var (
	flagLng      float64
	flagLat      float64
	flagRadiusKm float64
	flagCompact  bool
)

var rootCmd = &cobra.Command{
	Use:   "safenet-zones",
	Short: "Print hazard zones around an epicenter as GeoJSON",
	Long:  "Generates the danger ring and the wider warning ring around an epicenter and writes them to stdout as a GeoJSON FeatureCollection.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		epicenter := models.Coordinate{Longitude: flagLng, Latitude: flagLat}
		if err := epicenter.Validate(); err != nil {
			return err
		}

		z, err := zones.Generate(epicenter, flagRadiusKm)
		if err != nil {
			return fmt.Errorf("generate zones: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		if !flagCompact {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(zones.FeatureCollection(z)); err != nil {
			return fmt.Errorf("encode geojson: %w", err)
		}
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.Float64Var(&flagLng, "lng", 0, "epicenter longitude in degrees")
	f.Float64Var(&flagLat, "lat", 0, "epicenter latitude in degrees")
	f.Float64Var(&flagRadiusKm, "radius-km", 10, "danger zone radius in kilometers")
	f.BoolVar(&flagCompact, "compact", false, "write single-line JSON")
	_ = rootCmd.MarkFlagRequired("lng")
	_ = rootCmd.MarkFlagRequired("lat")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
