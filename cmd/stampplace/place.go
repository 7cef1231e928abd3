// stampplace - content-aware stamp placement engine for paginated documents
// Copyright (C) 2026  stampplace contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piecemark/stampplace"
	"github.com/piecemark/stampplace/internal/config"
	"github.com/piecemark/stampplace/internal/diagnostics"
)

var placeCmd = &cobra.Command{
	Use:   "place <raster.png>",
	Short: "Place a stamp on a single grayscale page raster",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlace,
}

var (
	flagOverlay  string
	flagStampMax int
	flagStampMin int
)

func init() {
	placeCmd.Flags().StringVar(&flagOverlay, "overlay", "", "write a diagnostics overlay PNG to this path")
	placeCmd.Flags().IntVar(&flagStampMax, "stamp-max", 0, "override stamp_max from the config file")
	placeCmd.Flags().IntVar(&flagStampMin, "stamp-min", 0, "override stamp_min from the config file")
}

func runPlace(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Flags override file values; viper merges the two layers the same
	// way the pack's pogo manifest pairs cobra with viper for this job.
	v := viper.New()
	v.SetDefault("stamp_max", cfg.StampMax)
	v.SetDefault("stamp_min", cfg.StampMin)
	v.BindPFlag("stamp_max", cmd.Flags().Lookup("stamp-max"))
	v.BindPFlag("stamp_min", cmd.Flags().Lookup("stamp-min"))

	setupLogging(cfg.LogLevel)

	r, err := loadRaster(args[0])
	if err != nil {
		return fmt.Errorf("loading raster: %w", err)
	}

	engine := stampplace.NewEngine(cfg.KernelCacheSize)
	defer engine.Close()
	engine.EnableMetrics()

	placementCfg := stampplace.PlacementConfig{
		StampMax:           v.GetInt("stamp_max"),
		StampMin:           v.GetInt("stamp_min"),
		MinMargin:          cfg.MinMargin,
		WhiteThreshold:     cfg.WhiteThreshold,
		OverlapBudgetFinal: cfg.OverlapBudgetFinal,
		KernelCacheSize:    cfg.KernelCacheSize,
	}

	placement, diag, err := engine.PlaceWithDiagnostics(r, placementCfg)
	if err != nil {
		return fmt.Errorf("placing stamp: %w", err)
	}

	slog.Info("placement found",
		"x", placement.X, "y", placement.Y, "zone", placement.Zone, "stamp", placement.Stamp,
		"tier", diag.Tier, "overlap", diag.OverlapRatio, "whiteness", diag.WhitenessRatio)
	fmt.Printf("x=%.0f y=%.0f zone=%.0f stamp=%.0f tier=%s\n",
		placement.X, placement.Y, placement.Zone, placement.Stamp, diag.Tier)

	if flagOverlay != "" {
		overlay := diagnostics.Render(r, placement, diag)
		if err := writePNG(flagOverlay, overlay); err != nil {
			return fmt.Errorf("writing overlay: %w", err)
		}
	}

	text, err := engine.WriteText()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	slog.Debug("metrics snapshot", "text", text)

	return nil
}

// loadRaster decodes a PNG into a single-channel stampplace.Raster.
// Format support is deliberately limited to PNG via the stdlib
// decoder: choosing a raster/image engine is a non-goal of the core,
// and the CLI only needs one format to exercise it.
func loadRaster(path string) (stampplace.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return stampplace.Raster{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return stampplace.Raster{}, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r := stampplace.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray := grayAt(img, bounds.Min.X+x, bounds.Min.Y+y)
			r.Pix[y*w+x] = gray
		}
	}
	return r, nil
}

func grayAt(img image.Image, x, y int) byte {
	gr, ok := img.(*image.Gray)
	if ok {
		return gr.GrayAt(x, y).Y
	}
	c := color16(img.At(x, y))
	return c
}

func color16(c interface {
	RGBA() (r, g, b, a uint32)
}) byte {
	r32, g32, b32, _ := c.RGBA()
	// Rec. 601 luma, matching the grayscale conversion most PDF
	// rasterizers in the reference pack already apply upstream.
	y := (299*r32 + 587*g32 + 114*b32) / 1000
	return byte(y >> 8)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
