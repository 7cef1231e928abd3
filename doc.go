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

// Package stampplace chooses where to put a stamp image on a rasterized
// document page.
//
// Given a single-channel grayscale raster of one page, [Engine.Place]
// builds a mask of "forbidden" content (text, ruled lines, embedded
// images, QR-like patterns), searches for the largest square region that
// is both empty of forbidden content and sufficiently white, and falls
// back through a sequence of progressively relaxed corner placements if
// no clean region exists. It never returns an error for a well-formed
// page: the last fallback tier is a forced placement that always
// succeeds.
//
// The engine owns no page data between calls. A [Raster] and its
// detector masks live only for the duration of one [Engine.Place] call;
// the long-lived state is the kernel cache (see kernel_cache.go), which
// is safe to share between concurrent callers, and the optional metrics
// recorder (see metrics.go).
package stampplace
