package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
)

// Raster colors
var (
	WallBackground  = gg.RGB(0.067, 0.067, 0.075) // Near black behind the wall
	TileShadow      = gg.RGBA2(0, 0, 0, 0.2)      // Drop shadow under tiles
	TileBorder      = gg.RGB(1, 1, 1)             // Outer frame
	TileInnerLine   = gg.RGBA2(0, 0, 0, 0.3)      // Inner frame
	PreviewBackdrop = gg.RGBA2(0, 0, 0, 0.8)      // Dim layer behind a preview
)

// Terminal colors
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background

	// Status bar backgrounds
	RgbModeWallBg    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbModeCommandBg = tcell.NewRGBColor(128, 0, 128)   // Dark purple
	RgbModePreviewBg = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbAudioMuted    = tcell.NewRGBColor(120, 120, 120) // Gray
	RgbAudioUnmuted  = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbTilesBg       = tcell.NewRGBColor(255, 255, 255) // Bright white
	RgbCacheBg       = tcell.NewRGBColor(255, 192, 203) // Pink
	RgbPositionBg    = tcell.NewRGBColor(180, 180, 180) // Gray
	RgbFpsBg         = tcell.NewRGBColor(0, 255, 255)   // Cyan

	RgbBlack             = tcell.NewRGBColor(0, 0, 0)
	RgbStatusText        = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbCommandInputText  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusMessageText = tcell.NewRGBColor(200, 200, 200) // Light gray
	RgbErrorText         = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbLoadingText       = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
)
