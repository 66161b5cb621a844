package artifacts

// MainImageFilename is the canonical primary image for a product. The
// integration stage prefers it over arbitrary first-found images.
const MainImageFilename = "main.jpg"

// ImageFile describes one downloaded image.
type ImageFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Bytes    int64  `json:"size_bytes,omitempty"`
}

// ProductImages holds the image extraction result for one product.
type ProductImages struct {
	DownloadedCount int         `json:"downloaded_count"`
	Images          []ImageFile `json:"images"`
}

// HasMain reports whether the canonical main image was downloaded.
func (p ProductImages) HasMain() bool {
	for _, img := range p.Images {
		if img.Filename == MainImageFilename {
			return true
		}
	}
	return false
}

// ImagesArtifact is the images category document
// (images/image_manifest.json).
type ImagesArtifact struct {
	Products    map[string]ProductImages `json:"products"`
	TotalImages int                      `json:"total_images"`
}
