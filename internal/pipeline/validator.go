package pipeline

import (
	"strings"

	"photobooth/internal/domain"
	"photobooth/internal/styles"
)

// maxImageBytes caps the encoded payload; 9 MiB of base64 is roughly 6.75 MiB
// of actual image.
const maxImageBytes = 9 * 1024 * 1024

var acceptedImagePrefixes = []string{
	"data:image/jpeg;base64,",
	"data:image/png;base64,",
	"data:image/webp;base64,",
}

// TransformRequest is the caller-facing input of the pipeline.
type TransformRequest struct {
	ImageBase64 string
	StyleID     string
	EventID     string
}

// Validate rejects malformed requests before any external call is made. It is
// pure and synchronous; every failure is InvalidArgument.
func Validate(req TransformRequest) error {
	if req.ImageBase64 == "" {
		return domain.NewError(domain.CodeInvalidArgument, "image is required")
	}
	accepted := false
	for _, prefix := range acceptedImagePrefixes {
		if strings.HasPrefix(req.ImageBase64, prefix) {
			accepted = true
			break
		}
	}
	if !accepted {
		return domain.NewError(domain.CodeInvalidArgument, "invalid image format, must be JPEG, PNG, or WebP")
	}
	if len(req.ImageBase64) > maxImageBytes {
		return domain.NewError(domain.CodeInvalidArgument, "image too large, maximum size is 9MB")
	}
	if req.StyleID == "" {
		return domain.NewError(domain.CodeInvalidArgument, "styleId is required")
	}
	if _, ok := styles.Prompt(req.StyleID); !ok {
		return domain.Errorf(domain.CodeInvalidArgument, "unknown style: %s", req.StyleID)
	}
	if req.EventID == "" {
		return domain.NewError(domain.CodeInvalidArgument, "eventId is required")
	}
	return nil
}
