package format

type (
	CompressionType uint8
	DownscaleMode   uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	DownscaleNearest DownscaleMode = 0x0 // DownscaleNearest keeps the lowest-coordinate voxel of each box.
	DownscaleLinear  DownscaleMode = 0x1 // DownscaleLinear averages each channel over the box.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (m DownscaleMode) String() string {
	switch m {
	case DownscaleNearest:
		return "Nearest"
	case DownscaleLinear:
		return "Linear"
	default:
		return "Unknown"
	}
}
