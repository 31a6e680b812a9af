// seehuhn.de/go/scanline - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Command scanline-render renders the drawings from the testcases
// package to PNG files.
//
// With -pdf, the purely geometric cases are also written as PDF files.
// These can be turned into reference images with Ghostscript, using -gs.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/scene"
	"seehuhn.de/go/scanline/testcases"
)

func main() {
	outDir := flag.String("out", "out", "output directory")
	run := flag.String("run", "", "only render cases whose name matches this regular expression")
	edgeMode := flag.String("edges", "bezier", "edge mode: bezier, flattened or contour")
	writePDF := flag.Bool("pdf", false, "also write PDF versions of the geometric cases")
	ghostscript := flag.Bool("gs", false, "render the PDF files to PNG using Ghostscript (implies -pdf)")
	verbose := flag.Bool("v", false, "log rendering details")
	flag.Parse()

	if *verbose {
		scanline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	err := renderAll(config{
		outDir:      *outDir,
		run:         *run,
		edgeMode:    *edgeMode,
		writePDF:    *writePDF || *ghostscript,
		ghostscript: *ghostscript,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "scanline-render:", err)
		os.Exit(1)
	}
}

type config struct {
	outDir      string
	run         string
	edgeMode    string
	writePDF    bool
	ghostscript bool
}

func renderAll(cfg config) error {
	var mode scene.EdgeMode
	switch cfg.edgeMode {
	case "bezier":
		mode = scene.EdgeModeBezier
	case "flattened":
		mode = scene.EdgeModeFlattened
	case "contour":
		mode = scene.EdgeModeContour
	default:
		return fmt.Errorf("unknown edge mode %q", cfg.edgeMode)
	}

	filter, err := regexp.Compile(cfg.run)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return err
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if !filter.MatchString(name) {
				continue
			}

			if err := renderPNG(tc, mode, filepath.Join(cfg.outDir, name+".png")); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if !cfg.writePDF {
				continue
			}

			pdfPath := filepath.Join(cfg.outDir, name+".pdf")
			err := generatePDF(tc, pdfPath)
			if err == errNotGeometric {
				slog.Info("no PDF version", "case", name)
				continue
			} else if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if cfg.ghostscript {
				refPath := filepath.Join(cfg.outDir, name+"_ref.png")
				if err := runGhostscript(pdfPath, refPath); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
		}
	}
	return nil
}

func renderPNG(tc testcases.TestCase, mode scene.EdgeMode, fname string) error {
	s := scene.New(tc.Width, tc.Height, scene.WithEdgeMode(mode))
	defer s.Shutdown()

	if err := s.Draw(tc.Draw...); err != nil {
		return err
	}
	img := s.RenderImage()

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runGhostscript(pdfPath, pngPath string) error {
	// -sDEVICE=png16m: 24-bit colour
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=png16m",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
