package schemas

import (
	"encoding/json"
	"testing"
)

func TestMessageContentUnmarshalString(t *testing.T) {
	var content MessageContent
	if err := json.Unmarshal([]byte(`"你好"`), &content); err != nil {
		t.Fatal(err)
	}
	if !content.IsPlain || content.Plain != "你好" {
		t.Fatalf("got %+v, want plain 你好", content)
	}
}

func TestMessageContentUnmarshalParts(t *testing.T) {
	raw := `[{"type":"text","text":"看看這張圖"},{"type":"image","data":"aGVsbG8=","mime_type":"image/png"}]`
	var content MessageContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		t.Fatal(err)
	}
	if content.IsPlain {
		t.Fatal("expected structured content")
	}
	if len(content.Parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(content.Parts))
	}
	if content.Parts[0].Text == nil || content.Parts[0].Text.Text != "看看這張圖" {
		t.Fatalf("part 0 = %+v", content.Parts[0])
	}
	if content.Parts[1].Image == nil || content.Parts[1].Image.MimeType != "image/png" {
		t.Fatalf("part 1 = %+v", content.Parts[1])
	}
}

func TestMessageContentUnmarshalInvalid(t *testing.T) {
	var content MessageContent
	if err := json.Unmarshal([]byte(`42`), &content); err == nil {
		t.Fatal("expected error for non-string non-list content")
	}
}

func TestContentPartUnknownType(t *testing.T) {
	var part ContentPart
	if err := json.Unmarshal([]byte(`{"type":"audio"}`), &part); err == nil {
		t.Fatal("expected error for unknown part type")
	}
}

func TestMessageContentRoundTrip(t *testing.T) {
	content := PartsContent(
		ContentPart{Text: &TextContent{Text: "hi"}},
		ContentPart{Image: &ImageContent{Data: "aGVsbG8=", MimeType: "image/jpeg"}},
	)
	data, err := json.Marshal(content)
	if err != nil {
		t.Fatal(err)
	}
	var decoded MessageContent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Parts) != 2 || decoded.Parts[1].Image == nil {
		t.Fatalf("round trip lost parts: %+v", decoded)
	}
}
