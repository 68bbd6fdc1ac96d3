package imagegen

import "fmt"

const editTemplate = `**Task**: Edit the provided image within the masked area.

**Style Mandate**: The edits MUST EXACTLY match the artistic style of the unmasked parts of the image. The style description below is a guide to help understand the key elements of the style. The original image is the definitive source for the style.

**Style Description (from AI analysis)**:
%s

**Edit Instruction**: Apply the following instruction to the masked area ONLY: "%s".

The rest of the image outside the mask must remain completely unchanged.`

// BuildEditPrompt renders the masked-edit directive. Painted mask pixels mark
// the region to change.
func BuildEditPrompt(instruction, styleDescription string) string {
	return fmt.Sprintf(editTemplate, styleDescription, instruction)
}
