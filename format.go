// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

import "strings"

// format.go implements format detection and loader dispatch (§4.2).
// The layout mirrors the model codebase's own asset-type enumeration
// (assetType iota plus a handful of map[string]X lookup tables in its
// shader-configuration loader) generalized from a handful of GPU asset
// kinds to the ~40 format tags this subsystem recognizes.

// FormatTag is a closed enumeration of the asset formats the manager
// knows how to dispatch. Binary-cached variants share the base tag's
// meaning but are produced by the cache writer and consumed by a
// format-specific binary loader rather than by parsing source bytes.
type FormatTag uint8

const (
	FormatRaw FormatTag = iota

	// Textures.
	FormatPNG
	FormatTGA
	FormatPPM
	FormatR16
	FormatR32
	FormatProcTex
	FormatAtlas
	FormatArrayTex
	FormatFont // SDF font-texture atlas (fonttex), not the TTF font itself.
	FormatNormalTex

	// Meshes.
	FormatGLTF
	FormatGLB
	FormatOBJ
	FormatProcMesh

	// Fonts.
	FormatTTF

	// Shaders.
	FormatSPV
	FormatGLSL
	FormatGLSLFrag
	FormatGLSLVert

	// Audio.
	FormatWAV

	// Domain definitions.
	FormatPrefab
	FormatWeapon
	FormatProduct
	FormatLevel
	FormatDecal
	FormatVFX
	FormatInputs
	FormatTerrain
	FormatGraphic
	FormatIcon
	FormatCursor
	FormatScript

	// Binary-cached variants, one per cacheable domain/texture/mesh/font
	// tag above. These are produced by the cache writer (§4.9) and read
	// back by a binary loader instead of the source parser.
	FormatPrefabBin
	FormatWeaponBin
	FormatProductBin
	FormatLevelBin
	FormatDecalBin
	FormatVFXBin
	FormatInputsBin
	FormatTerrainBin
	FormatGraphicBin
	FormatIconBin
	FormatCursorBin
	FormatFontBin
	FormatShaderBin
	FormatTTFBin

	formatTagCount // sentinel, must stay last.
)

// extensionFormats maps a lower-cased, dot-free file extension to its
// format tag. Unknown extensions resolve to FormatRaw, the catch-all.
var extensionFormats = map[string]FormatTag{
	"ttf": FormatTTF,
	"tga": FormatTGA,
	"ppm": FormatPPM,
	"png": FormatPNG,
	"r16": FormatR16,
	"r32": FormatR32,
	"glb": FormatGLB,
	"gltf": FormatGLTF,
	"obj": FormatOBJ,
	"spv": FormatSPV,
	"wav": FormatWAV,
	"atl": FormatAtlas,
	"arraytex": FormatArrayTex,
	"noisetex": FormatProcTex,
	"fonttex": FormatFont,
	"decal": FormatDecal,
	"weapon": FormatWeapon,
	"product": FormatProduct,
	"prefab": FormatPrefab,
	"level": FormatLevel,
	"inputs": FormatInputs,
	"terrain": FormatTerrain,
	"graphic": FormatGraphic,
	"icon": FormatIcon,
	"cursor": FormatCursor,
	"vfx": FormatVFX,
	"script": FormatScript,

	"prefabbin": FormatPrefabBin,
	"weaponbin": FormatWeaponBin,
	"productbin": FormatProductBin,
	"levelbin": FormatLevelBin,
	"decalbin": FormatDecalBin,
	"vfxbin": FormatVFXBin,
	"inputsbin": FormatInputsBin,
	"terrainbin": FormatTerrainBin,
	"graphicbin": FormatGraphicBin,
	"iconbin": FormatIconBin,
	"cursorbin": FormatCursorBin,
	"fontbin": FormatFontBin,
	"shaderbin": FormatShaderBin,
	"ttfbin": FormatTTFBin,
}

// FormatFromExtension resolves a file extension (with or without the
// leading dot) to a format tag, defaulting to FormatRaw.
func FormatFromExtension(ext string) FormatTag {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if tag, ok := extensionFormats[ext]; ok {
		return tag
	}
	return FormatRaw
}

// FormatFromID resolves the format tag for an asset id from its
// extension, the convention used throughout the manager.
func FormatFromID(id string) FormatTag {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return FormatFromExtension(id[i+1:])
	}
	return FormatRaw
}

// Loader is the dispatch signature for a format-specific loader
// function (§4.2: "a loader function of signature (world, id, entity,
// source) → void"). Suspension (§5 "a loader that must wait for a
// dependency... returns") is expressed by returning done=false: the
// handle stays Loading and is revisited next tick. done=true with a
// nil error marks the handle Loaded; done=true with a non-nil error
// marks it Failed — in place of the reference's marker components.
type Loader func(m *Manager, h Handle, id string, src Source) (done bool, err error)

// loaderTable is indexed by FormatTag; a nil entry means "unsupported
// format", matching §4.2's "an entry may be null, in which case load
// fails with an unsupported format message".
type loaderTable [formatTagCount]Loader

// RegisterLoader installs ld as the loader for tag, overwriting any
// previous registration. Embedding applications call this once at
// startup for every format they care about; formats left unregistered
// fail every load attempt with ErrUnsupportedFormat.
func (m *Manager) RegisterLoader(tag FormatTag, ld Loader) {
	m.loaders[tag] = ld
}

func (m *Manager) loaderFor(tag FormatTag) Loader {
	if int(tag) >= len(m.loaders) {
		return nil
	}
	return m.loaders[tag]
}
