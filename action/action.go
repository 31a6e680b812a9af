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

// Package action defines the identifiers and enumerations shared between
// the scene, the pixel programs and render back-ends.
package action

import "fmt"

// TextureID identifies a texture held by the renderer.
type TextureID uint32

// RenderTargetID identifies a render target.
type RenderTargetID uint32

// The ids 0 to 15 of textures and render targets are reserved.
const (
	MainRenderTarget    RenderTargetID = 0
	ClipRenderTarget    RenderTargetID = 1
	ResolveRenderTarget RenderTargetID = 2

	MainTexture TextureID = 0
	ClipTexture TextureID = 1
	DashTexture TextureID = 2

	// FirstFreeID is the first id which can be allocated for textures and
	// render targets.
	FirstFreeID = 16
)

// IsReserved reports whether id is one of the reserved texture ids.
func (id TextureID) IsReserved() bool {
	return id < FirstFreeID
}

// IsReserved reports whether id is one of the reserved render target ids.
func (id RenderTargetID) IsReserved() bool {
	return id < FirstFreeID
}

// BlendMode selects how a colour is combined with the colour already
// present in the destination.
type BlendMode uint8

// These are the supported blend modes.  The Porter-Duff modes use the
// usual operator names.  The AllChannelAlpha modes use each colour channel
// as its own coverage value.
const (
	SourceOver BlendMode = iota
	DestinationOver
	SourceIn
	DestinationIn
	SourceOut
	DestinationOut
	SourceATop
	DestinationATop
	Screen
	Multiply
	AllChannelAlphaSourceOver
	AllChannelAlphaDestinationOver
)

var blendModeNames = [...]string{
	SourceOver:                     "SourceOver",
	DestinationOver:                "DestinationOver",
	SourceIn:                       "SourceIn",
	DestinationIn:                  "DestinationIn",
	SourceOut:                      "SourceOut",
	DestinationOut:                 "DestinationOut",
	SourceATop:                     "SourceATop",
	DestinationATop:                "DestinationATop",
	Screen:                         "Screen",
	Multiply:                       "Multiply",
	AllChannelAlphaSourceOver:      "AllChannelAlphaSourceOver",
	AllChannelAlphaDestinationOver: "AllChannelAlphaDestinationOver",
}

func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", m)
}

// BlendModes lists all blend modes.
var BlendModes = []BlendMode{
	SourceOver, DestinationOver, SourceIn, DestinationIn,
	SourceOut, DestinationOut, SourceATop, DestinationATop,
	Screen, Multiply,
	AllChannelAlphaSourceOver, AllChannelAlphaDestinationOver,
}
