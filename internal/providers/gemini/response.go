package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"styledna/internal/domain"
	"styledna/internal/providers/image"
)

// firstInlineImage returns the first inline image of the first candidate.
// A missing image is classified as blocked when the prompt or the candidate
// carries a safety verdict, and as empty otherwise.
func firstInlineImage(resp *genai.GenerateContentResponse) (image.Asset, error) {
	if resp == nil {
		return image.Asset{}, fmt.Errorf("%w: empty response", domain.ErrNoImages)
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return image.Asset{}, fmt.Errorf("%w: prompt blocked: %s", domain.ErrBlocked, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return image.Asset{}, fmt.Errorf("%w: no candidates", domain.ErrNoImages)
	}
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return image.Asset{Data: part.InlineData.Data, MIMEType: mimeType}, nil
		}
	}
	switch cand.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonImageSafety, genai.FinishReasonProhibitedContent:
		return image.Asset{}, fmt.Errorf("%w: finish reason %s", domain.ErrBlocked, cand.FinishReason)
	}
	return image.Asset{}, fmt.Errorf("%w: candidate carried no inline image", domain.ErrNoImages)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return strings.TrimSpace(resp.Text())
}

// extractJSONFragment strips code fences and surrounding prose from a model
// answer that should be a JSON document.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
