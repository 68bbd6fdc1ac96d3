package imaging

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"styledna/internal/domain"
)

// DetectMIME sniffs the media type of data.
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// Sniff replaces the declared MIME type of asset with the sniffed one and
// rejects payloads that are not images.
func Sniff(asset domain.ImageAsset) (domain.ImageAsset, error) {
	data, err := asset.Bytes()
	if err != nil {
		return domain.ImageAsset{}, domain.Invalid("image", err.Error())
	}
	detected := DetectMIME(data)
	if !strings.HasPrefix(detected, "image/") {
		return domain.ImageAsset{}, domain.Invalid("image", fmt.Sprintf("%s is %s, not an image", asset.Name, detected))
	}
	asset.MIMEType = detected
	return asset, nil
}
