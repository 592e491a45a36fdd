package nn

import "fmt"

// DataFormat is the channel-ordering convention of network inputs.
type DataFormat string

const (
	ChannelsFirst DataFormat = "channels_first"
	ChannelsLast  DataFormat = "channels_last"
)

// imageDataFormat is the process-wide input convention, queried by model
// assemblers. Layer implementations always compute channels-first; models
// canonicalize channels-last inputs on the way in.
var imageDataFormat = ChannelsFirst

// ImageDataFormat returns the current global channel-ordering convention.
func ImageDataFormat() DataFormat {
	return imageDataFormat
}

// SetImageDataFormat sets the global channel-ordering convention.
func SetImageDataFormat(f DataFormat) error {
	switch f {
	case ChannelsFirst, ChannelsLast:
		imageDataFormat = f
		return nil
	default:
		return fmt.Errorf("unknown data format %q", f)
	}
}
