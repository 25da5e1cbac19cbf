package remote

// ControlledPlayer is the transport surface a remote-control protocol can
// drive. quaver's playback engine satisfies it directly.
type ControlledPlayer interface {
	Resume() error
	Pause() error
	Next() error
	Prev() error

	// SetPosition seeks to an absolute offset within the loaded track.
	SetPosition(seconds int64) error

	// SetVolume takes 0.0..1.0.
	SetVolume(volume float64) error
}

type TrackInterface interface {
	GetID() string
	GetTitle() string
	GetArtist() string
	GetAlbum() string
	GetDuration() int64

	// something like ID != ""
	IsValid() bool
}
