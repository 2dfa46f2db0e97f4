// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package asset

import (
	"encoding/json"
	"errors"

	"github.com/galvanized/forge/cache"
	"github.com/galvanized/forge/decl"
	"github.com/galvanized/forge/font"
	"github.com/galvanized/forge/fonttex"
	"github.com/galvanized/forge/texture"
)

// loader.go wires the format-specific packages (font, fonttex, texture,
// decl, cache) into the manager's Loader table. An embedding
// application calls RegisterStandardLoaders once at startup instead of
// wiring each format tag by hand.

var (
	ErrFontInvalid         = errors.New("asset: font-texture bundle references an invalid or failed font")
	ErrMalformedDefinition = errors.New("asset: declarative source failed to parse")
)

// RegisterStandardLoaders installs every loader this module ships for
// m. Applications that only need a subset may instead call
// RegisterLoader per tag directly.
func RegisterStandardLoaders(m *Manager) {
	m.RegisterLoader(FormatTTF, loadTTF)
	m.RegisterLoader(FormatFont, loadFontTexture)

	m.RegisterLoader(FormatTGA, textureLoader(texture.DecodeTGA))
	m.RegisterLoader(FormatPPM, textureLoader(texture.DecodePPM))
	m.RegisterLoader(FormatPNG, loadPNG)
	m.RegisterLoader(FormatR16, loadHeight16)
	m.RegisterLoader(FormatR32, loadHeight32)

	m.RegisterLoader(FormatPrefab, loadPrefab)
	m.RegisterLoader(FormatWeapon, loadWeapon)
	m.RegisterLoader(FormatInputs, loadInputs)
}

// loadTTF parses a TrueType font in one tick and attaches the result.
// TTF parsing is synchronous and pure, so it never suspends.
func loadTTF(m *Manager, h Handle, id string, src Source) (bool, error) {
	f, err := font.Parse(src.Data)
	if err != nil {
		return true, err
	}
	m.attach(h, f)
	return true, nil
}

// textureDecoder is satisfied by texture.DecodeTGA, DecodePPM and
// DecodePNG: raw bytes in, row-major RGBA8 pixels and dimensions out.
// The height decoders have their own signature (see loadHeight16).
type textureDecoder func(data []byte) (pixels []byte, width, height int, err error)

// textureLoader adapts a textureDecoder into a Loader that funnels the
// decoded pixels through texture.Create, auto-detecting the normal-map
// flag from the asset id.
func textureLoader(decode textureDecoder) Loader {
	return func(m *Manager, h Handle, id string, src Source) (bool, error) {
		pixels, width, height, err := decode(src.Data)
		if err != nil {
			return true, err
		}
		flags := texture.Flags(0)
		if texture.IsNormalMap(id) {
			flags |= texture.FlagNormalMap
		}
		tex := texture.Create(pixels, uint32(width), uint32(height), 4, 1, 1, texture.U8, flags)
		m.attach(h, tex)
		return true, nil
	}
}

// loadPNG always fails: PNG decoding is a deliberate stub.
func loadPNG(m *Manager, h Handle, id string, src Source) (bool, error) {
	_, _, _, err := texture.DecodePNG(src.Data)
	return true, err
}

func loadHeight16(m *Manager, h Handle, id string, src Source) (bool, error) {
	pixels, side, err := texture.DecodeHeight16(src.Data)
	if err != nil {
		return true, err
	}
	tex := texture.Create(pixels, uint32(side), uint32(side), 1, 1, 1, texture.F32, 0)
	m.attach(h, tex)
	return true, nil
}

func loadHeight32(m *Manager, h Handle, id string, src Source) (bool, error) {
	pixels, side, err := texture.DecodeHeight32(src.Data)
	if err != nil {
		return true, err
	}
	tex := texture.Create(pixels, uint32(side), uint32(side), 1, 1, 1, texture.F32, 0)
	m.attach(h, tex)
	return true, nil
}

// fontTexDef is the JSON shape of an SDF font-texture bundle request:
// one atlas built from one or more font assets, each contributing its
// own character set, variation, and layout offsets.
type fontTexDef struct {
	Size        uint32         `json:"size"`
	GlyphSize   uint32         `json:"glyphSize"`
	Border      float32        `json:"border"`
	LineSpacing float32        `json:"lineSpacing"`
	Baseline    float32        `json:"baseline"`
	Lossless    bool           `json:"lossless"`
	Fonts       []fontTexEntry `json:"fonts"`
}

type fontTexEntry struct {
	FontAsset  string            `json:"fontAsset"`
	Variation  fonttex.Variation `json:"variation"`
	YOffset    float32           `json:"yOffset"`
	Spacing    float32           `json:"spacing"`
	Characters string            `json:"characters"`
}

// fontTexLoadState tracks the font-texture bundle's dependency-wait
// loop across ticks: it acquires every referenced font asset and
// suspends until each has settled, loaded or failed.
type fontTexLoadState struct {
	def      fontTexDef
	fontDeps []Handle
}

// loadFontTexture parses the bundle definition, acquires its font
// dependencies, waits for them, then bakes the SDF atlas once every
// dependency has settled.
func loadFontTexture(m *Manager, h Handle, id string, src Source) (bool, error) {
	state, ok := fetchLoadState[*fontTexLoadState](m, h)
	if !ok {
		var def fontTexDef
		if err := json.Unmarshal(src.Data, &def); err != nil {
			return true, ErrMalformedDefinition
		}
		state = &fontTexLoadState{def: def}
		for _, entry := range def.Fonts {
			dep := m.Lookup(entry.FontAsset)
			m.RegisterDep(h, dep)
			m.Acquire(dep)
			state.fontDeps = append(state.fontDeps, dep)
		}
		m.setLoadState(h, state)
	}

	for _, dep := range state.fontDeps {
		flags := m.Flags(dep)
		if flags&FlagFailed != 0 {
			m.clearLoadState(h)
			return true, ErrFontInvalid
		}
		if flags&FlagLoaded == 0 {
			return false, nil
		}
	}

	atlas, err := bakeFontTexture(m, state)
	m.clearLoadState(h)
	if err != nil {
		return true, err
	}
	m.attach(h, atlas)

	m.RequestCache(h, cache.Encode(&atlasValue{atlas}))
	return true, nil
}

func bakeFontTexture(m *Manager, state *fontTexLoadState) (*fonttex.Atlas, error) {
	opts := fonttex.Options{Size: state.def.Size, GlyphSize: state.def.GlyphSize, Border: state.def.Border}

	fonts := make([]*font.Font, len(state.fontDeps))
	for i, dep := range state.fontDeps {
		f, ok := Component[*font.Font](m, dep)
		if !ok {
			return nil, ErrFontInvalid
		}
		fonts[i] = f
	}

	var requests []fonttex.Request
	for i, entry := range state.def.Fonts {
		for _, r := range entry.Characters {
			requests = append(requests, fonttex.Request{
				FontIndex: i,
				Code:      r,
				Variation: entry.Variation,
				YOffset:   entry.YOffset,
				Spacing:   entry.Spacing,
			})
		}
	}
	if len(requests) == 0 {
		return nil, fonttex.ErrNoCharacters
	}

	return fonttex.Generate(fonts, requests, opts)
}

// atlasValue adapts a *fonttex.Atlas into the cache.Value interface so
// the generated bundle can be persisted and later restored without
// re-rasterizing.
type atlasValue struct{ *fonttex.Atlas }

var atlasMeta = cache.NewMeta("fonttex.Atlas", cache.KindU32, cache.KindU32, cache.KindMemory, cache.KindArray)

func (a *atlasValue) CacheMeta() cache.Meta { return atlasMeta }

func (a *atlasValue) EncodeCache(w *cache.Writer) {
	w.WriteU32(a.Texture.Width)
	w.WriteU32(a.Texture.Height)
	w.WriteMemory(a.Texture.Pixels, false)
	w.WriteCount(len(a.Glyphs))
	for _, g := range a.Glyphs {
		w.WriteU16(g.Code)
		w.WriteU8(uint8(g.Variation))
		w.WriteU32(g.GlyphIndex)
		w.WriteU32(g.X)
		w.WriteU32(g.Y)
		w.WriteU32(g.Width)
		w.WriteF32(g.Advance)
		w.WriteF32(g.OffsetX)
		w.WriteF32(g.OffsetY)
		w.WriteF32(g.GlyphSize)
		w.WriteF32(g.Border)
	}
}

func (a *atlasValue) DecodeCache(r *cache.Reader) error {
	width, err := r.ReadU32()
	if err != nil {
		return err
	}
	height, err := r.ReadU32()
	if err != nil {
		return err
	}
	pixels, err := r.ReadMemory(false)
	if err != nil {
		return err
	}
	count, err := r.ReadCount()
	if err != nil {
		return err
	}
	glyphs := make([]fonttex.AtlasGlyph, count)
	for i := range glyphs {
		if glyphs[i].Code, err = r.ReadU16(); err != nil {
			return err
		}
		variation, err := r.ReadU8()
		if err != nil {
			return err
		}
		glyphs[i].Variation = fonttex.Variation(variation)
		if glyphs[i].GlyphIndex, err = r.ReadU32(); err != nil {
			return err
		}
		if glyphs[i].X, err = r.ReadU32(); err != nil {
			return err
		}
		if glyphs[i].Y, err = r.ReadU32(); err != nil {
			return err
		}
		if glyphs[i].Width, err = r.ReadU32(); err != nil {
			return err
		}
		if glyphs[i].Advance, err = r.ReadF32(); err != nil {
			return err
		}
		if glyphs[i].OffsetX, err = r.ReadF32(); err != nil {
			return err
		}
		if glyphs[i].OffsetY, err = r.ReadF32(); err != nil {
			return err
		}
		if glyphs[i].GlyphSize, err = r.ReadF32(); err != nil {
			return err
		}
		if glyphs[i].Border, err = r.ReadF32(); err != nil {
			return err
		}
	}
	a.Atlas = &fonttex.Atlas{
		Texture: texture.Create(pixels, width, height, 1, 1, 1, texture.U8, 0),
		Glyphs:  glyphs,
	}
	return nil
}

// loadPrefab, loadWeapon, and loadInputs parse their JSON definitions
// through the declarative transform and attach the packed map. None of
// these reference other assets by id in this module's scope, so the
// general patch-to-handle step the format allows for is a no-op here.
func loadPrefab(m *Manager, h Handle, id string, src Source) (bool, error) {
	var defs []decl.PrefabDef
	if err := json.Unmarshal(src.Data, &defs); err != nil {
		return true, ErrMalformedDefinition
	}
	pm, err := decl.BuildPrefabMap(defs)
	if err != nil {
		return true, err
	}
	m.attach(h, pm)
	m.RequestCache(h, cache.Encode(pm))
	return true, nil
}

func loadWeapon(m *Manager, h Handle, id string, src Source) (bool, error) {
	var defs []decl.WeaponDef
	if err := json.Unmarshal(src.Data, &defs); err != nil {
		return true, ErrMalformedDefinition
	}
	wm, err := decl.BuildWeaponMap(defs)
	if err != nil {
		return true, err
	}
	m.attach(h, wm)
	m.RequestCache(h, cache.Encode(wm))
	return true, nil
}

func loadInputs(m *Manager, h Handle, id string, src Source) (bool, error) {
	var defs []decl.ActionDef
	if err := json.Unmarshal(src.Data, &defs); err != nil {
		return true, ErrMalformedDefinition
	}
	im, err := decl.BuildInputMap(defs)
	if err != nil {
		return true, err
	}
	m.attach(h, im)
	m.RequestCache(h, cache.Encode(im))
	return true, nil
}
