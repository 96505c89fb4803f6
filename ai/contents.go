package ai

import (
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
)

// AllowedImageMIMETypes is the fixed allow-list for inline chat images.
var AllowedImageMIMETypes = []string{
	"image/jpeg", "image/png", "image/webp", "image/heic", "image/heif",
}

// ValidateImages checks every image part in the given turns against the
// MIME allow-list and verifies the payload decodes. Runs before
// normalization so a bad upload never reaches the model.
func ValidateImages(messages []schemas.ChatMessage) error {
	for _, msg := range messages {
		if msg.Content.IsPlain {
			continue
		}
		for _, part := range msg.Content.Parts {
			if part.Image == nil {
				continue
			}
			if !isAllowedImageType(part.Image.MimeType) {
				return fmt.Errorf("不支援的圖片類型: %s。僅支援: %s",
					part.Image.MimeType, strings.Join(AllowedImageMIMETypes, ", "))
			}
			if _, err := decodeImageData(part.Image.Data); err != nil {
				return err
			}
		}
	}
	return nil
}

func isAllowedImageType(mimeType string) bool {
	for _, t := range AllowedImageMIMETypes {
		if mimeType == t {
			return true
		}
	}
	return false
}

// BuildContents converts conversation turns into the ordered content list the
// model consumes. History comes first, then the current turns, with input
// order preserved throughout.
//
// The system prompt is prepended as a user-role turn because the model has no
// native system turn type for this call shape.
func BuildContents(history, messages []schemas.ChatMessage, systemPrompt string) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(history)+len(messages)+1)

	if systemPrompt != "" {
		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: systemPrompt}},
		})
	}

	for _, msg := range append(append([]schemas.ChatMessage{}, history...), messages...) {
		parts, err := buildParts(msg.Content)
		if err != nil {
			return nil, err
		}
		contents = append(contents, &genai.Content{
			Role:  mapRole(msg.Role),
			Parts: parts,
		})
	}
	return contents, nil
}

func buildParts(content schemas.MessageContent) ([]*genai.Part, error) {
	if content.IsPlain {
		return []*genai.Part{{Text: content.Plain}}, nil
	}

	parts := make([]*genai.Part, 0, len(content.Parts))
	for _, item := range content.Parts {
		switch {
		case item.Text != nil:
			parts = append(parts, &genai.Part{Text: item.Text.Text})
		case item.Image != nil:
			data, err := decodeImageData(item.Image.Data)
			if err != nil {
				return nil, err
			}
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{Data: data, MIMEType: item.Image.MimeType},
			})
		}
	}
	return parts, nil
}

// decodeImageData decodes base64 image data, stripping a data-URI prefix
// ("data:image/png;base64,...") when present.
func decodeImageData(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		_, encoded, found := strings.Cut(data, ",")
		if !found {
			return nil, fmt.Errorf("無效的圖片資料: malformed data URI")
		}
		data = encoded
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("無效的圖片資料: %w", err)
	}
	return decoded, nil
}

// mapRole converts API roles to the model's two-role vocabulary. System
// turns become user turns (see BuildContents).
func mapRole(role string) string {
	switch role {
	case "assistant", "model":
		return genai.RoleModel
	default:
		return genai.RoleUser
	}
}
