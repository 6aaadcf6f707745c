package playback

// Video describes what is playing, for history and the media session.
type Video struct {
	ID          string
	Title       string
	Author      string
	Description string
	Thumbnail   string
	// Length is the catalog duration in seconds; the element's duration
	// takes over once known.
	Length float64
}
