package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"asbestos-screen/internal/domain/entity"
)

var centersFlags struct {
	lat, lng float64
	limit    int
	markdown bool
}

var centersCmd = &cobra.Command{
	Use:   "centers",
	Short: "List certified inspection centers, nearest first",
	RunE:  runCenters,
}

func init() {
	f := centersCmd.Flags()
	f.Float64Var(&centersFlags.lat, "lat", 0, "latitude of the origin")
	f.Float64Var(&centersFlags.lng, "lng", 0, "longitude of the origin")
	f.IntVar(&centersFlags.limit, "limit", 0, "max centers to show (0 = all)")
	f.BoolVar(&centersFlags.markdown, "markdown", false, "print a Markdown table")
}

func runCenters(cmd *cobra.Command, _ []string) error {
	_, c, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	var origin *entity.Coordinates
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		origin = &entity.Coordinates{Lat: centersFlags.lat, Lng: centersFlags.lng}
	}

	list, err := c.Facilities.Nearby(cmd.Context(), origin, centersFlags.limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), facilityTable(list, centersFlags.markdown))
	return nil
}

func stars(n int) string {
	if n <= 0 {
		return "-"
	}
	return strings.Repeat("*", n)
}
