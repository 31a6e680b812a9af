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

package testcases

import (
	"bytes"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"testing"

	"seehuhn.de/go/scanline/scene"
	"seehuhn.de/go/scanline/scheduler"
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

func TestNames(t *testing.T) {
	seen := make(map[string]bool)
	for category, cases := range All {
		for _, tc := range cases {
			name := category + "_" + tc.Name
			if !validName.MatchString(tc.Name) {
				t.Errorf("invalid name %q", name)
			}
			if seen[name] {
				t.Errorf("duplicate name %q", name)
			}
			seen[name] = true
		}
	}
}

func TestRenderAll(t *testing.T) {
	sched := scheduler.New()
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, tc := range All[category] {
			t.Run(fmt.Sprintf("%s_%s", category, tc.Name), func(t *testing.T) {
				s := scene.New(tc.Width, tc.Height, scene.WithScheduler(sched))
				defer s.Shutdown()

				if err := s.Draw(tc.Draw...); err != nil {
					t.Fatal(err)
				}
				img := s.RenderImage()
				if b := img.Bounds(); b.Dx() != tc.Width || b.Dy() != tc.Height {
					t.Fatalf("image bounds %v", b)
				}

				// All cases draw something which is neither empty nor
				// a single colour.
				first := img.RGBAAt(0, 0)
				uniform := true
				for y := range tc.Height {
					for x := range tc.Width {
						if img.RGBAAt(x, y) != first {
							uniform = false
						}
					}
				}
				if uniform {
					t.Errorf("output is uniform %v", first)
				}

				if again := s.RenderImage(); !bytes.Equal(img.Pix, again.Pix) {
					t.Error("second rendering differs")
				}
			})
		}
	}
}

func TestEdgeModes(t *testing.T) {
	for _, tc := range slices.Concat(fillCases, curveCases) {
		t.Run(tc.Name, func(t *testing.T) {
			var imgs [][]byte
			for _, mode := range []scene.EdgeMode{scene.EdgeModeBezier, scene.EdgeModeFlattened} {
				s := scene.New(tc.Width, tc.Height, scene.WithEdgeMode(mode))
				if err := s.Draw(tc.Draw...); err != nil {
					t.Fatal(err)
				}
				imgs = append(imgs, s.RenderImage().Pix)
				s.Shutdown()
			}
			bad := 0
			for i := range imgs[0] {
				d := int(imgs[0][i]) - int(imgs[1][i])
				if d < -96 || d > 96 {
					bad++
				}
			}
			if bad > len(imgs[0])/100 {
				t.Errorf("%d of %d bytes differ", bad, len(imgs[0]))
			}
		})
	}
}
