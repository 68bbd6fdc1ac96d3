package gemini

import "google.golang.org/genai"

func stringField(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func stringList(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

// styleSchema is the Style DNA shape requested from the analysis model.
var styleSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"overallAesthetic": stringField("A concise summary of the overall style and mood (e.g., photorealistic 3D render, whimsical watercolor, retro comic book)."),
		"colorPalette": {
			Type:        genai.TypeObject,
			Description: "Detailed analysis of the color usage.",
			Properties: map[string]*genai.Schema{
				"dominantColors":   stringList("An array of dominant hex color codes found in the image."),
				"accentColors":     stringList("An array of accent hex color codes."),
				"usageDescription": stringField("Describe how colors are used (e.g., fills, strokes, gradients) and the overall color harmony and temperature (warm, cool, muted, vibrant)."),
				"colorWeight":      stringField("Describe the balance and proportion of colors. Is there one color that dominates, or is it a more even distribution?"),
			},
			Required:         []string{"dominantColors", "accentColors", "usageDescription", "colorWeight"},
			PropertyOrdering: []string{"dominantColors", "accentColors", "usageDescription", "colorWeight"},
		},
		"materialAndTexture": {
			Type:        genai.TypeObject,
			Description: "Analysis of surface qualities.",
			Properties: map[string]*genai.Schema{
				"material":       stringField("Describe the depicted material (e.g., glass, metal, paper, fabric)."),
				"surfaceTexture": stringField("Describe the texture (e.g., smooth, polished, rough, painterly, gritty)."),
				"brushwork":      stringField("Describe any visible brushwork or stroke style (e.g., digital, clean lines, textured strokes)."),
			},
			Required:         []string{"material", "surfaceTexture", "brushwork"},
			PropertyOrdering: []string{"material", "surfaceTexture", "brushwork"},
		},
		"lighting": {
			Type:        genai.TypeObject,
			Description: "Analysis of the lighting.",
			Properties: map[string]*genai.Schema{
				"style":   stringField("Describe the lighting style (e.g., studio HDRI, dramatic, soft, flat, rim lighting)."),
				"effects": stringList("List any notable lighting effects observed (e.g., reflections, refractions, bloom, dispersion)."),
			},
			Required:         []string{"style", "effects"},
			PropertyOrdering: []string{"style", "effects"},
		},
		"composition": {
			Type:        genai.TypeObject,
			Description: "Analysis of composition and form.",
			Properties: map[string]*genai.Schema{
				"shapeLanguage":       stringField("Describe the nature of shapes used (e.g., geometric, organic, sharp, soft)."),
				"depthAndPerspective": stringField("How is depth created (e.g., shading, layering, atmospheric effects)?"),
				"complexity":          stringField("Describe the visual complexity, from 'minimalist' to 'highly detailed and dense'."),
			},
			Required:         []string{"shapeLanguage", "depthAndPerspective", "complexity"},
			PropertyOrdering: []string{"shapeLanguage", "depthAndPerspective", "complexity"},
		},
		"postProcessingEffects": stringList("List any post-processing effects detected (e.g., chromatic aberration, glow, high contrast, vignette)."),
	},
	Required: []string{"overallAesthetic", "colorPalette", "materialAndTexture", "lighting", "composition", "postProcessingEffects"},
	PropertyOrdering: []string{
		"overallAesthetic", "colorPalette", "materialAndTexture", "lighting", "composition", "postProcessingEffects",
	},
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestedStyleDescription": stringField("The improved style description in a valid, pretty-printed JSON string format."),
		"suggestedPositivePrompt":   stringField("The improved positive prompt."),
		"suggestedNegativePrompt":   stringField("The improved negative prompt."),
	},
	Required:         []string{"suggestedStyleDescription", "suggestedPositivePrompt", "suggestedNegativePrompt"},
	PropertyOrdering: []string{"suggestedStyleDescription", "suggestedPositivePrompt", "suggestedNegativePrompt"},
}
