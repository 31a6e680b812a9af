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

package scene

import (
	"seehuhn.de/go/scanline/action"
	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/pixel"
)

// textureUses counts the shapes whose programs read each texture.  A
// texture which is freed or replaced keeps its id and its data until the
// last of these shapes is gone, so that shapes never change appearance
// because an id was handed out again.
type textureUses struct {
	refs    map[action.TextureID]int
	retired map[action.TextureID]bool

	// free drops the data of a texture and releases its id.
	free func(action.TextureID)
}

func newTextureUses(free func(action.TextureID)) *textureUses {
	return &textureUses{
		refs:    make(map[action.TextureID]int),
		retired: make(map[action.TextureID]bool),
		free:    free,
	}
}

// add records a new shape.
func (u *textureUses) add(desc edgeplan.ShapeDescriptor) {
	programTextures(desc.Program, func(id action.TextureID) {
		u.refs[id]++
	})
}

// remove records that a shape was removed.
func (u *textureUses) remove(desc edgeplan.ShapeDescriptor) {
	programTextures(desc.Program, func(id action.TextureID) {
		u.refs[id]--
		if u.refs[id] > 0 {
			return
		}
		delete(u.refs, id)
		if u.retired[id] {
			delete(u.retired, id)
			u.free(id)
		}
	})
}

// retire marks a texture as no longer available for new shapes.
func (u *textureUses) retire(id action.TextureID) {
	if u.refs[id] > 0 {
		u.retired[id] = true
		return
	}
	u.free(id)
}

// inUse reports whether any shape reads the texture.
func (u *textureUses) inUse(id action.TextureID) bool {
	return u.refs[id] > 0
}

// programTextures calls yield for every texture read by prog.
func programTextures(prog pixel.Program, yield func(action.TextureID)) {
	switch p := prog.(type) {
	case pixel.BasicTexture:
		yield(p.Texture)
	case pixel.LinearGradient:
		yield(p.Texture)
	case pixel.Blend:
		programTextures(p.Inner, yield)
	case pixel.SourceOver:
		programTextures(p.Inner, yield)
	case pixel.Opacity:
		programTextures(p.Inner, yield)
	}
}
