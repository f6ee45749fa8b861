package imgsplit

const (
	// SectionCount is the number of sections produced per image.
	SectionCount = 5

	minWidth  = 2
	minHeight = 3

	bytesPerPixel = 4
)

const (
	defaultJPEGQuality = 95
	defaultThumbSize   = 256
	maxThumbSize       = 1024
	defaultPadding     = 8
	defaultWorkers     = 4
)

const (
	sectionFilePattern = "section_%d.%s"
	manifestFilename   = "manifest.json"
	manifestFormat     = "imgsplit-manifest-1"
)
