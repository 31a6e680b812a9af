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

package action

import "testing"

func TestReservedIDs(t *testing.T) {
	for _, id := range []TextureID{MainTexture, ClipTexture, DashTexture, 15} {
		if !id.IsReserved() {
			t.Errorf("texture %d should be reserved", id)
		}
	}
	if TextureID(FirstFreeID).IsReserved() {
		t.Error("first free texture id is reserved")
	}
	for _, id := range []RenderTargetID{MainRenderTarget, ClipRenderTarget, ResolveRenderTarget} {
		if !id.IsReserved() {
			t.Errorf("render target %d should be reserved", id)
		}
	}
}

func TestBlendModeNames(t *testing.T) {
	if len(BlendModes) != 12 {
		t.Fatalf("got %d blend modes", len(BlendModes))
	}
	seen := map[string]bool{}
	for _, m := range BlendModes {
		name := m.String()
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true
	}
	if got := BlendMode(99).String(); got != "BlendMode(99)" {
		t.Errorf("unexpected name %q", got)
	}
}
