package pipeline

import (
	"bytes"
	"context"
	"fmt"

	pkgio "github.com/matzehuels/alpsviz/pkg/io"
	"github.com/matzehuels/alpsviz/pkg/profile"
	"github.com/matzehuels/alpsviz/pkg/render/diagram"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, p *profile.Profile, dot string, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(ctx, p, dot, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, p *profile.Profile, dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return diagram.RenderSVG(ctx, dot)
	case FormatPNG:
		return diagram.RenderPNG(ctx, dot)
	case FormatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(p, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// isRaster reports whether format goes through Graphviz and is worth caching.
func isRaster(format string) bool {
	return format == FormatSVG || format == FormatPNG
}
