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

package canvas

import (
	"fmt"

	"github.com/google/uuid"
)

// LayerHandle identifies a layer.  Layers are created on first use.
type LayerHandle uint64

// SpriteHandle identifies a sprite.
type SpriteHandle uint64

// TextureHandle identifies a texture.
type TextureHandle uint64

// GradientHandle identifies a gradient.
type GradientHandle uint64

// FontHandle identifies a font.
type FontHandle uint64

// NamespaceID identifies a namespace.  Sprites, textures, gradients and
// fonts with equal handles in different namespaces are unrelated.
type NamespaceID uuid.UUID

// DefaultNamespace is the namespace in use before the first [Namespace]
// command.
var DefaultNamespace = NamespaceID(uuid.Nil)

// NewNamespaceID returns a random namespace id.
func NewNamespaceID() NamespaceID {
	return NamespaceID(uuid.New())
}

func (n NamespaceID) String() string {
	if n == DefaultNamespace {
		return "default"
	}
	return uuid.UUID(n).String()
}

// EntityID identifies a scene, for example in log messages.
type EntityID uuid.UUID

// NewEntityID returns a random entity id.
func NewEntityID() EntityID {
	return EntityID(uuid.New())
}

func (e EntityID) String() string {
	return uuid.UUID(e).String()
}

func (h LayerHandle) String() string    { return fmt.Sprintf("layer %d", uint64(h)) }
func (h SpriteHandle) String() string   { return fmt.Sprintf("sprite %d", uint64(h)) }
func (h TextureHandle) String() string  { return fmt.Sprintf("texture %d", uint64(h)) }
func (h GradientHandle) String() string { return fmt.Sprintf("gradient %d", uint64(h)) }
func (h FontHandle) String() string     { return fmt.Sprintf("font %d", uint64(h)) }
