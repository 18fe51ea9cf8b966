package ggmuller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clonalstack/clonaltrace/genotype"
)

// basePalette is the fixed display palette; genotypes beyond its length get
// deterministic generated colors.
var basePalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#808080",
	"#ffffff", "#000000",
}

// rootColor marks the ancestral background band.
const rootColor = "#333333"

// Palette assigns a display color to every genotype id plus the root.
// Assignment is by sorted id so the same input always colors the same way.
func Palette(ids []string) map[string]string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	palette := map[string]string{genotype.Root: rootColor}
	for i, id := range sorted {
		if i < len(basePalette) {
			palette[id] = basePalette[i]

			continue
		}
		// Deterministic fallback: spread extra genotypes over the RGB cube.
		var h uint32
		for _, c := range id {
			h = h*31 + uint32(c)
		}
		palette[id] = fmt.Sprintf("#%02X%02X%02X",
			50+(h>>16)%150, 50+(h>>8)%150, 50+h%150)
	}

	return palette
}

// Mermaid renders the edge table as a mermaid flowchart, one arrow per
// child → parent relationship, with per-node palette styling.
func Mermaid(edges []Edge, palette map[string]string) string {
	lines := []string{"graph TD;"}
	seen := map[string]bool{}
	for _, e := range edges {
		lines = append(lines, fmt.Sprintf("id%s(%s)-->id%s(%s);",
			shortID(e.Identity), e.Identity, shortID(e.Parent), e.Parent))
		seen[e.Identity] = true
	}

	styled := make([]string, 0, len(seen))
	for id := range seen {
		styled = append(styled, id)
	}
	sort.Strings(styled)
	for _, id := range styled {
		if color, ok := palette[id]; ok {
			lines = append(lines, fmt.Sprintf("style id%s fill:%s", shortID(id), color))
		}
	}

	return strings.Join(lines, "\n")
}

// shortID extracts the numeric suffix of a genotype identity for compact
// mermaid node names.
func shortID(id string) string {
	if i := strings.LastIndex(id, "-"); i >= 0 {
		return id[i+1:]
	}

	return id
}
