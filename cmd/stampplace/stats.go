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

	"github.com/spf13/cobra"

	"github.com/piecemark/stampplace/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the effective configuration (defaults merged with the config file)",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	fmt.Printf("stamp_max=%d stamp_min=%d min_margin=%d white_threshold=%d overlap_budget_final=%.2f kernel_cache_size=%d\n",
		cfg.StampMax, cfg.StampMin, cfg.MinMargin, cfg.WhiteThreshold, cfg.OverlapBudgetFinal, cfg.KernelCacheSize)
	return nil
}
