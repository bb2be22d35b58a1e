package pipeline

import (
	"strings"
	"testing"

	"photobooth/internal/domain"
)

func validRequest() TransformRequest {
	return TransformRequest{
		ImageBase64: "data:image/jpeg;base64," + strings.Repeat("A", 256),
		StyleID:     "vintage",
		EventID:     "e1",
	}
}

func TestValidateAcceptsSupportedFormats(t *testing.T) {
	for _, prefix := range []string{
		"data:image/jpeg;base64,",
		"data:image/png;base64,",
		"data:image/webp;base64,",
	} {
		req := validRequest()
		req.ImageBase64 = prefix + "AAAA"
		if err := Validate(req); err != nil {
			t.Fatalf("Validate(%s...): %v", prefix, err)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TransformRequest)
	}{
		{"missing image", func(r *TransformRequest) { r.ImageBase64 = "" }},
		{"unsupported mime", func(r *TransformRequest) { r.ImageBase64 = "data:image/gif;base64,AAAA" }},
		{"no data uri", func(r *TransformRequest) { r.ImageBase64 = "AAAA" }},
		{"oversized", func(r *TransformRequest) {
			r.ImageBase64 = "data:image/jpeg;base64," + strings.Repeat("A", maxImageBytes)
		}},
		{"missing style", func(r *TransformRequest) { r.StyleID = "" }},
		{"unknown style", func(r *TransformRequest) { r.StyleID = "claymation" }},
		{"missing event", func(r *TransformRequest) { r.EventID = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := Validate(req)
			if domain.CodeOf(err) != domain.CodeInvalidArgument {
				t.Fatalf("want invalid_argument, got %v", err)
			}
		})
	}
}
