package ports

// Playable is an acquired audio resource ready to be started and paused.
type Playable interface {
	Start()
	Pause()
}

type AudioService interface {
	Acquire(resource string) (Playable, error)
	Close() error
}
