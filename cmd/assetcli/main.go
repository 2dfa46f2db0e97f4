// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// assetcli is a small diagnostic tool for the asset module: inspecting
// a binary cache blob's header, and baking an SDF font-texture atlas
// from a TTF font and a character-request document outside of a running
// Manager.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/galvanized/forge/cache"
	"github.com/galvanized/forge/font"
	"github.com/galvanized/forge/fonttex"
)

func inspectCache(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	hdr, err := cache.PeekHeader(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Printf("version:          %d\n", hdr.Version)
	fmt.Printf("type name hash:   0x%08x\n", hdr.TypeNameHash)
	fmt.Printf("type struct hash: 0x%08x\n", hdr.TypeStructHash)
	fmt.Printf("payload bytes:    %d\n", len(data)-16)
	return nil
}

// atlasRequest is the JSON shape atlas build reads: the atlas options and
// the set of characters to rasterize (the font file is a separate
// command argument), in the same spirit as loadFontTexture's
// bundle definition but standalone (no Manager, no dependency handles).
type atlasRequest struct {
	Size       uint32  `json:"size"`
	GlyphSize  uint32  `json:"glyphSize"`
	Border     float32 `json:"border"`
	Characters string  `json:"characters"`
}

func buildAtlas(cmd *cobra.Command, args []string) error {
	fontPath, configPath, outPath := args[0], args[1], args[2]

	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fontPath, err)
	}
	f, err := font.Parse(fontBytes)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", fontPath, err)
	}

	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", configPath, err)
	}
	var req atlasRequest
	if err := json.Unmarshal(configBytes, &req); err != nil {
		return fmt.Errorf("parsing %s: %w", configPath, err)
	}

	var requests []fonttex.Request
	for _, r := range req.Characters {
		requests = append(requests, fonttex.Request{FontIndex: 0, Code: r})
	}
	opts := fonttex.Options{Size: req.Size, GlyphSize: req.GlyphSize, Border: req.Border}
	atlas, err := fonttex.Generate([]*font.Font{f}, requests, opts)
	if err != nil {
		return fmt.Errorf("generating atlas: %w", err)
	}

	img := &image.Gray{
		Pix:    atlas.Texture.Pixels,
		Stride: int(atlas.Texture.Width),
		Rect:   image.Rect(0, 0, int(atlas.Texture.Width), int(atlas.Texture.Height)),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s: %d glyphs, %dx%d\n", outPath, len(atlas.Glyphs), atlas.Texture.Width, atlas.Texture.Height)
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "assetcli",
		Short: "Diagnostic tooling for the asset module",
	}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect cached binary asset blobs",
	}
	inspectCmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print a cache blob's header fields",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectCache,
	}
	cacheCmd.AddCommand(inspectCmd)

	atlasCmd := &cobra.Command{
		Use:   "atlas",
		Short: "Work with SDF font-texture atlases",
	}
	buildCmd := &cobra.Command{
		Use:   "build <font.ttf> <request.json> <out.png>",
		Short: "Bake an SDF atlas and write it as a PNG",
		Args:  cobra.ExactArgs(3),
		RunE:  buildAtlas,
	}
	atlasCmd.AddCommand(buildCmd)

	rootCmd.AddCommand(cacheCmd, atlasCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
